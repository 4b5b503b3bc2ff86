package input

import (
	"context"

	"element-inspector/internal/domain/entity"
)

type InspectRequest struct {
	// BrowseMode: результат проверки режима хоста, вычисленный снаружи конвейера.
	BrowseMode bool
	Focused    entity.NodeRef
	HasFocus   bool
	Advanced   bool

	// DocumentURL пустой, если хост адрес не отдал.
	DocumentURL string
}

// Inspector строит отчёт; ошибки наружу не выходят, любой сбой превращается в Report.
type Inspector interface {
	Inspect(ctx context.Context, req InspectRequest) *entity.Report
}

// Trigger: команда, привязанная к жесту оболочки.
type Trigger interface {
	Gesture() entity.Gesture
	Description() string
	Run(ctx context.Context) error
}
