package output

import (
	"context"

	"element-inspector/internal/domain/entity"
)

// AccessibleTreePort: набор операций чтения доступного дерева хоста.
// Каждая операция может независимо вернуть entity.ErrNotAvailable,
// а для недействительного узла entity.ErrStaleNode.
type AccessibleTreePort interface {
	Role(ctx context.Context, ref entity.NodeRef) (string, error)
	States(ctx context.Context, ref entity.NodeRef) ([]string, error)
	Name(ctx context.Context, ref entity.NodeRef) (string, error)
	Value(ctx context.Context, ref entity.NodeRef) (string, error)
	Description(ctx context.Context, ref entity.NodeRef) (string, error)
	Tag(ctx context.Context, ref entity.NodeRef) (string, error)
	XMLRoles(ctx context.Context, ref entity.NodeRef) ([]string, error)
	ID(ctx context.Context, ref entity.NodeRef) (string, error)
	Classes(ctx context.Context, ref entity.NodeRef) ([]string, error)
	InputType(ctx context.Context, ref entity.NodeRef) (string, error)
	// URL is the effective link or resource target (href/src).
	URL(ctx context.Context, ref entity.NodeRef) (string, error)
	// Level is the hierarchical level of headings, tree items and the like.
	Level(ctx context.Context, ref entity.NodeRef) (int, error)
	Relationships(ctx context.Context, ref entity.NodeRef) ([]entity.Relationship, error)
	SetPosition(ctx context.Context, ref entity.NodeRef) (entity.SetPosition, error)
	TabIndex(ctx context.Context, ref entity.NodeRef) (entity.TabIndex, error)

	// Parent returns entity.ErrNoParent for roots and detached nodes.
	Parent(ctx context.Context, ref entity.NodeRef) (entity.NodeRef, error)
	Children(ctx context.Context, ref entity.NodeRef) ([]entity.NodeRef, error)
	IsBoundary(ctx context.Context, ref entity.NodeRef) (bool, error)
}
