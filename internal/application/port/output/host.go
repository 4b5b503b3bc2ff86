package output

import (
	"context"

	"element-inspector/internal/domain/entity"
)

type HostPort interface {
	BrowseMode(ctx context.Context) (bool, error)
	// FocusedNode returns ok=false when nothing is focused.
	FocusedNode(ctx context.Context) (ref entity.NodeRef, ok bool, err error)
	DocumentURL(ctx context.Context) (string, error)
}
