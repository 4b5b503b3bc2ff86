// Package memory is an in-process accessible tree used by tests and demos.
package memory

import (
	"context"
	"fmt"
	"sync"

	"element-inspector/internal/application/port/output"
	"element-inspector/internal/domain/entity"
)

var (
	_ output.AccessibleTreePort = (*Tree)(nil)
	_ output.HostPort           = (*Tree)(nil)
)

// Operation names accepted by Node.Fail and Node.PanicOn.
const (
	OpRole          = "role"
	OpStates        = "states"
	OpName          = "name"
	OpValue         = "value"
	OpDescription   = "description"
	OpTag           = "tag"
	OpXMLRoles      = "xmlRoles"
	OpID            = "id"
	OpClasses       = "classes"
	OpInputType     = "inputType"
	OpURL           = "url"
	OpLevel         = "level"
	OpRelationships = "relationships"
	OpSetPosition   = "setPosition"
	OpTabIndex      = "tabIndex"
	OpParent        = "parent"
	OpChildren      = "children"
	OpBoundary      = "boundary"
)

type Node struct {
	Ref           entity.NodeRef
	Role          entity.Optional[string]
	States        entity.Optional[[]string]
	Name          entity.Optional[string]
	Value         entity.Optional[string]
	Description   entity.Optional[string]
	Tag           entity.Optional[string]
	XMLRoles      entity.Optional[[]string]
	ID            entity.Optional[string]
	Classes       entity.Optional[[]string]
	InputType     entity.Optional[string]
	URL           entity.Optional[string]
	Level         entity.Optional[int]
	Relationships entity.Optional[[]entity.Relationship]
	SetPosition   entity.SetPosition
	TabIndex      entity.TabIndex
	Boundary      bool

	// Parent may point anywhere, including a descendant, to model malformed trees.
	Parent   entity.NodeRef
	Children []entity.NodeRef

	Fail    map[string]error
	PanicOn string
}

type Tree struct {
	mu      sync.Mutex
	nodes   map[entity.NodeRef]*Node
	reads   int
	focused entity.NodeRef
	browse  bool
	docURL  string

	// OnRead вызывается перед каждым запросом; тесты меняют дерево на лету.
	OnRead func(op string, ref entity.NodeRef)
}

func New() *Tree {
	return &Tree{
		nodes:  make(map[entity.NodeRef]*Node),
		browse: true,
	}
}

// Add registers n under parent ("" for a detached node or root).
func (t *Tree) Add(parent entity.NodeRef, n *Node) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	n.Parent = parent
	t.nodes[n.Ref] = n
	if p, ok := t.nodes[parent]; ok {
		p.Children = append(p.Children, n.Ref)
	}
	return n
}

// Remove делает ссылку недействительной, как будто узел исчез из документа.
func (t *Tree) Remove(ref entity.NodeRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.nodes, ref)
}

func (t *Tree) Focus(ref entity.NodeRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focused = ref
}

func (t *Tree) SetBrowseMode(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.browse = on
}

func (t *Tree) SetDocumentURL(u string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.docURL = u
}

func (t *Tree) Reads() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reads
}

func (t *Tree) BrowseMode(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.browse, nil
}

func (t *Tree) FocusedNode(ctx context.Context) (entity.NodeRef, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.focused == "" {
		return "", false, nil
	}
	return t.focused, true, nil
}

func (t *Tree) DocumentURL(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.docURL == "" {
		return "", entity.ErrNotAvailable
	}
	return t.docURL, nil
}

func (t *Tree) node(op string, ref entity.NodeRef) (*Node, error) {
	if hook := t.OnRead; hook != nil {
		hook(op, ref)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.reads++

	n, ok := t.nodes[ref]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", op, ref, entity.ErrStaleNode)
	}
	if n.PanicOn == op {
		panic(fmt.Sprintf("memory tree: %s on %s", op, ref))
	}
	if err := n.Fail[op]; err != nil {
		return nil, err
	}
	return n, nil
}

func optional[T any](op string, ref entity.NodeRef, o entity.Optional[T]) (T, error) {
	v, ok := o.Get()
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", op, ref, entity.ErrNotAvailable)
	}
	return v, nil
}

func (t *Tree) Role(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpRole, ref)
	if err != nil {
		return "", err
	}
	return optional(OpRole, ref, n.Role)
}

func (t *Tree) States(ctx context.Context, ref entity.NodeRef) ([]string, error) {
	n, err := t.node(OpStates, ref)
	if err != nil {
		return nil, err
	}
	v, err := optional(OpStates, ref, n.States)
	return append([]string(nil), v...), err
}

func (t *Tree) Name(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpName, ref)
	if err != nil {
		return "", err
	}
	return optional(OpName, ref, n.Name)
}

func (t *Tree) Value(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpValue, ref)
	if err != nil {
		return "", err
	}
	return optional(OpValue, ref, n.Value)
}

func (t *Tree) Description(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpDescription, ref)
	if err != nil {
		return "", err
	}
	return optional(OpDescription, ref, n.Description)
}

func (t *Tree) Tag(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpTag, ref)
	if err != nil {
		return "", err
	}
	return optional(OpTag, ref, n.Tag)
}

func (t *Tree) XMLRoles(ctx context.Context, ref entity.NodeRef) ([]string, error) {
	n, err := t.node(OpXMLRoles, ref)
	if err != nil {
		return nil, err
	}
	v, err := optional(OpXMLRoles, ref, n.XMLRoles)
	return append([]string(nil), v...), err
}

func (t *Tree) ID(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpID, ref)
	if err != nil {
		return "", err
	}
	return optional(OpID, ref, n.ID)
}

func (t *Tree) Classes(ctx context.Context, ref entity.NodeRef) ([]string, error) {
	n, err := t.node(OpClasses, ref)
	if err != nil {
		return nil, err
	}
	v, err := optional(OpClasses, ref, n.Classes)
	return append([]string(nil), v...), err
}

func (t *Tree) InputType(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpInputType, ref)
	if err != nil {
		return "", err
	}
	return optional(OpInputType, ref, n.InputType)
}

func (t *Tree) URL(ctx context.Context, ref entity.NodeRef) (string, error) {
	n, err := t.node(OpURL, ref)
	if err != nil {
		return "", err
	}
	return optional(OpURL, ref, n.URL)
}

func (t *Tree) Level(ctx context.Context, ref entity.NodeRef) (int, error) {
	n, err := t.node(OpLevel, ref)
	if err != nil {
		return 0, err
	}
	return optional(OpLevel, ref, n.Level)
}

func (t *Tree) Relationships(ctx context.Context, ref entity.NodeRef) ([]entity.Relationship, error) {
	n, err := t.node(OpRelationships, ref)
	if err != nil {
		return nil, err
	}
	v, err := optional(OpRelationships, ref, n.Relationships)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Relationship, 0, len(v))
	for _, r := range v {
		out = append(out, entity.Relationship{Kind: r.Kind, Targets: append([]string(nil), r.Targets...)})
	}
	return out, nil
}

func (t *Tree) SetPosition(ctx context.Context, ref entity.NodeRef) (entity.SetPosition, error) {
	n, err := t.node(OpSetPosition, ref)
	if err != nil {
		return entity.SetPosition{}, err
	}
	return n.SetPosition, nil
}

func (t *Tree) TabIndex(ctx context.Context, ref entity.NodeRef) (entity.TabIndex, error) {
	n, err := t.node(OpTabIndex, ref)
	if err != nil {
		return entity.TabIndex{}, err
	}
	return n.TabIndex, nil
}

func (t *Tree) Parent(ctx context.Context, ref entity.NodeRef) (entity.NodeRef, error) {
	n, err := t.node(OpParent, ref)
	if err != nil {
		return "", err
	}
	if n.Parent == "" {
		return "", fmt.Errorf("parent of %s: %w", ref, entity.ErrNoParent)
	}
	return n.Parent, nil
}

func (t *Tree) Children(ctx context.Context, ref entity.NodeRef) ([]entity.NodeRef, error) {
	n, err := t.node(OpChildren, ref)
	if err != nil {
		return nil, err
	}
	return append([]entity.NodeRef(nil), n.Children...), nil
}

func (t *Tree) IsBoundary(ctx context.Context, ref entity.NodeRef) (bool, error) {
	n, err := t.node(OpBoundary, ref)
	if err != nil {
		return false, err
	}
	return n.Boundary, nil
}
