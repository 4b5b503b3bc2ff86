package output

import (
	"context"

	"element-inspector/internal/domain/entity"
)

type PresenterPort interface {
	Present(ctx context.Context, report *entity.Report) error
	Message(ctx context.Context, text string)
}
