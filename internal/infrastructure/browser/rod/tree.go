package rod

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"element-inspector/internal/domain/entity"
)

// AX-свойства, которые становятся токенами состояния.
var stateProperties = map[string]string{
	"busy":            "busy",
	"disabled":        "disabled",
	"focusable":       "focusable",
	"focused":         "focused",
	"modal":           "modal",
	"multiline":       "multiline",
	"multiselectable": "multiselectable",
	"readonly":        "readonly",
	"required":        "required",
	"selected":        "selected",
	"checked":         "checked",
	"pressed":         "pressed",
	"expanded":        "expanded",
	"invalid":         "invalid",
	"editable":        "editable",
}

var relationshipProperties = map[string]string{
	"labelledby":       entity.RelLabelledBy,
	"describedby":      entity.RelDescribedBy,
	"controls":         entity.RelControls,
	"owns":             entity.RelOwns,
	"flowto":           entity.RelFlowTo,
	"details":          entity.RelDetails,
	"errormessage":     entity.RelErrorMessage,
	"activedescendant": entity.RelActiveDescendant,
}

func (b *BrowserAdapter) Role(ctx context.Context, ref entity.NodeRef) (string, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return "", err
	}
	return axString(ref, "role", node.Role)
}

func (b *BrowserAdapter) Name(ctx context.Context, ref entity.NodeRef) (string, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return "", err
	}
	return axString(ref, "name", node.Name)
}

func (b *BrowserAdapter) Value(ctx context.Context, ref entity.NodeRef) (string, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return "", err
	}
	return axString(ref, "value", node.Value)
}

func (b *BrowserAdapter) Description(ctx context.Context, ref entity.NodeRef) (string, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return "", err
	}
	return axString(ref, "description", node.Description)
}

func (b *BrowserAdapter) States(ctx context.Context, ref entity.NodeRef) ([]string, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return nil, err
	}

	var states []string
	for _, p := range node.Properties {
		if p == nil || p.Value == nil {
			continue
		}
		token, ok := stateProperties[string(p.Name)]
		if !ok {
			continue
		}
		if s, ok := stateToken(token, p.Value); ok {
			states = append(states, s)
		}
	}
	return states, nil
}

// stateToken переводит значение AX-свойства в токен. false не даёт токена,
// кроме expanded=false, которое Chrome отдаёт явно как «свёрнуто».
func stateToken(token string, v *proto.AccessibilityAXValue) (string, bool) {
	switch string(v.Type) {
	case "boolean", "booleanOrUndefined":
		if v.Value.Bool() {
			return token, true
		}
		if token == "expanded" {
			return "collapsed", true
		}
		return "", false
	case "tristate":
		switch v.Value.Str() {
		case "true":
			return token, true
		case "mixed":
			return "half-" + token, true
		}
		return "", false
	case "token":
		s := v.Value.Str()
		if s == "" || s == "false" {
			return "", false
		}
		return token, true
	default:
		return "", false
	}
}

func (b *BrowserAdapter) Tag(ctx context.Context, ref entity.NodeRef) (string, error) {
	node, err := b.domNode(ctx, ref)
	if err != nil {
		return "", err
	}
	if node.LocalName != "" {
		return node.LocalName, nil
	}
	if node.NodeName != "" {
		return strings.ToLower(node.NodeName), nil
	}
	return "", fmt.Errorf("tag of %s: %w", ref, entity.ErrNotAvailable)
}

func (b *BrowserAdapter) XMLRoles(ctx context.Context, ref entity.NodeRef) ([]string, error) {
	attrs, err := b.attributes(ctx, ref)
	if err != nil {
		return nil, err
	}
	role, ok := attrs["role"]
	if !ok {
		return nil, fmt.Errorf("role attribute of %s: %w", ref, entity.ErrNotAvailable)
	}
	return strings.Fields(role), nil
}

func (b *BrowserAdapter) ID(ctx context.Context, ref entity.NodeRef) (string, error) {
	return b.attribute(ctx, ref, "id")
}

func (b *BrowserAdapter) Classes(ctx context.Context, ref entity.NodeRef) ([]string, error) {
	class, err := b.attribute(ctx, ref, "class")
	if err != nil {
		return nil, err
	}
	return strings.Fields(class), nil
}

func (b *BrowserAdapter) InputType(ctx context.Context, ref entity.NodeRef) (string, error) {
	return b.attribute(ctx, ref, "type")
}

// URL: разрешённый адрес из AX-свойства url, иначе сырой href/src из разметки.
func (b *BrowserAdapter) URL(ctx context.Context, ref entity.NodeRef) (string, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return "", err
	}
	if v := axProperty(node, "url"); v != nil && v.Value.Str() != "" {
		return v.Value.Str(), nil
	}

	attrs, err := b.attributes(ctx, ref)
	if err != nil {
		return "", err
	}
	for _, key := range []string{"href", "src"} {
		if u, ok := attrs[key]; ok && u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("url of %s: %w", ref, entity.ErrNotAvailable)
}

func (b *BrowserAdapter) Level(ctx context.Context, ref entity.NodeRef) (int, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return 0, err
	}
	if v := axProperty(node, "level"); v != nil && !v.Value.Nil() {
		return v.Value.Int(), nil
	}

	attrs, err := b.attributes(ctx, ref)
	if err != nil {
		return 0, err
	}
	if lvl, ok := intAttribute(attrs, "aria-level"); ok {
		return lvl, nil
	}
	return 0, fmt.Errorf("level of %s: %w", ref, entity.ErrNotAvailable)
}

func axProperty(node *proto.AccessibilityAXNode, name string) *proto.AccessibilityAXValue {
	for _, p := range node.Properties {
		if p != nil && string(p.Name) == name {
			return p.Value
		}
	}
	return nil
}

func (b *BrowserAdapter) Relationships(ctx context.Context, ref entity.NodeRef) ([]entity.Relationship, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return nil, err
	}

	var rels []entity.Relationship
	for _, p := range node.Properties {
		if p == nil || p.Value == nil {
			continue
		}
		kind, ok := relationshipProperties[string(p.Name)]
		if !ok {
			continue
		}
		targets := make([]string, 0, len(p.Value.RelatedNodes))
		for _, rn := range p.Value.RelatedNodes {
			targets = append(targets, relatedLabel(rn))
		}
		rels = append(rels, entity.Relationship{Kind: kind, Targets: targets})
	}
	return rels, nil
}

func relatedLabel(rn *proto.AccessibilityAXRelatedNode) string {
	switch {
	case rn.Idref != "":
		return "#" + rn.Idref
	case strings.TrimSpace(rn.Text) != "":
		return strings.TrimSpace(rn.Text)
	default:
		return "node " + strconv.Itoa(int(rn.BackendDOMNodeID))
	}
}

func (b *BrowserAdapter) SetPosition(ctx context.Context, ref entity.NodeRef) (entity.SetPosition, error) {
	attrs, err := b.attributes(ctx, ref)
	if err != nil {
		return entity.SetPosition{}, err
	}

	var pos entity.SetPosition
	if v, ok := intAttribute(attrs, "aria-posinset"); ok {
		pos.PosInSet = entity.Some(v)
	}
	if v, ok := intAttribute(attrs, "aria-setsize"); ok {
		pos.SetSize = entity.Some(v)
	}
	return pos, nil
}

// TabIndex: явный атрибут даёт Exposed, иначе DOM-свойство tabIndex даёт Derived.
func (b *BrowserAdapter) TabIndex(ctx context.Context, ref entity.NodeRef) (entity.TabIndex, error) {
	node, err := b.domNode(ctx, ref)
	if err != nil {
		return entity.TabIndex{}, err
	}
	if v, ok := intAttribute(attributeMap(node.Attributes), "tabindex"); ok {
		return entity.ExposedTabIndex(v), nil
	}
	if node.NodeType != 1 {
		return entity.TabIndex{}, nil
	}

	p, cancel := b.client(ctx)
	defer cancel()

	el, err := p.ElementFromNode(&proto.DOMNode{BackendNodeID: node.BackendNodeID})
	if err != nil {
		return entity.TabIndex{}, mapError("tabindex", ref, err)
	}
	prop, err := el.Property("tabIndex")
	if err != nil {
		return entity.TabIndex{}, mapError("tabindex", ref, err)
	}
	if prop.Nil() {
		return entity.TabIndex{}, nil
	}
	return entity.DerivedTabIndex(prop.Int()), nil
}

func (b *BrowserAdapter) Parent(ctx context.Context, ref entity.NodeRef) (entity.NodeRef, error) {
	target, nodes, err := b.axRelatives(ctx, ref)
	if err != nil {
		return "", err
	}
	parent, err := exposedParent(target, nodes)
	if err != nil {
		return "", fmt.Errorf("parent of %s: %w", ref, err)
	}
	return refFromBackend(parent.BackendDOMNodeID), nil
}

// exposedParent поднимается над игнорируемыми обёртками (html, body, generic без семантики).
func exposedParent(node *proto.AccessibilityAXNode, nodes map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode) (*proto.AccessibilityAXNode, error) {
	seen := map[proto.AccessibilityAXNodeID]bool{node.NodeID: true}
	cur := node
	for {
		if cur.ParentID == "" {
			return nil, entity.ErrNoParent
		}
		parent, ok := nodes[cur.ParentID]
		if !ok || seen[parent.NodeID] {
			return nil, entity.ErrNotAvailable
		}
		seen[parent.NodeID] = true
		if !parent.Ignored && parent.BackendDOMNodeID != 0 {
			return parent, nil
		}
		cur = parent
	}
}

func (b *BrowserAdapter) Children(ctx context.Context, ref entity.NodeRef) ([]entity.NodeRef, error) {
	target, nodes, err := b.axRelatives(ctx, ref)
	if err != nil {
		return nil, err
	}

	children := make([]entity.NodeRef, 0, len(target.ChildIDs))
	for _, id := range target.ChildIDs {
		child, ok := nodes[id]
		if !ok || child.BackendDOMNodeID == 0 {
			continue
		}
		children = append(children, refFromBackend(child.BackendDOMNodeID))
	}
	return children, nil
}

func (b *BrowserAdapter) IsBoundary(ctx context.Context, ref entity.NodeRef) (bool, error) {
	node, err := b.axNode(ctx, ref)
	if err != nil {
		return false, err
	}
	if node.Role != nil {
		switch node.Role.Value.Str() {
		case "RootWebArea", "WebArea":
			return true, nil
		}
	}
	tag, err := b.Tag(ctx, ref)
	if err != nil {
		if errors.Is(err, entity.ErrStaleNode) {
			return false, err
		}
		return false, nil
	}
	return tag == "#document", nil
}

func (b *BrowserAdapter) axNode(ctx context.Context, ref entity.NodeRef) (*proto.AccessibilityAXNode, error) {
	id, err := backendID(ref)
	if err != nil {
		return nil, err
	}

	p, cancel := b.client(ctx)
	defer cancel()

	res, err := proto.AccessibilityGetPartialAXTree{
		BackendNodeID:  id,
		FetchRelatives: false,
	}.Call(p)
	if err != nil {
		return nil, mapError("ax node", ref, err)
	}
	if n := findBackend(res.Nodes, id); n != nil {
		return n, nil
	}
	// без совпадения по backend id чужой узел не подставляем
	return nil, fmt.Errorf("ax node %s: %w", ref, entity.ErrNotAvailable)
}

func findBackend(nodes []*proto.AccessibilityAXNode, id proto.DOMBackendNodeID) *proto.AccessibilityAXNode {
	for _, n := range nodes {
		if n.BackendDOMNodeID == id {
			return n
		}
	}
	return nil
}

// axRelatives возвращает узел и его родственников (предки, соседи, дети), индексированных по AX id.
func (b *BrowserAdapter) axRelatives(ctx context.Context, ref entity.NodeRef) (*proto.AccessibilityAXNode, map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, error) {
	id, err := backendID(ref)
	if err != nil {
		return nil, nil, err
	}

	p, cancel := b.client(ctx)
	defer cancel()

	res, err := proto.AccessibilityGetPartialAXTree{
		BackendNodeID:  id,
		FetchRelatives: true,
	}.Call(p)
	if err != nil {
		return nil, nil, mapError("ax relatives", ref, err)
	}

	var target *proto.AccessibilityAXNode
	nodes := make(map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, len(res.Nodes))
	for _, n := range res.Nodes {
		nodes[n.NodeID] = n
		if target == nil && n.BackendDOMNodeID == id {
			target = n
		}
	}
	if target == nil {
		return nil, nil, fmt.Errorf("ax relatives %s: %w", ref, entity.ErrNotAvailable)
	}
	return target, nodes, nil
}

func (b *BrowserAdapter) domNode(ctx context.Context, ref entity.NodeRef) (*proto.DOMNode, error) {
	id, err := backendID(ref)
	if err != nil {
		return nil, err
	}

	p, cancel := b.client(ctx)
	defer cancel()

	res, err := proto.DOMDescribeNode{
		BackendNodeID: id,
		Depth:         gson.Int(0),
	}.Call(p)
	if err != nil {
		return nil, mapError("dom node", ref, err)
	}
	if res.Node == nil {
		return nil, fmt.Errorf("dom node %s: %w", ref, entity.ErrNotAvailable)
	}
	return res.Node, nil
}

func (b *BrowserAdapter) attribute(ctx context.Context, ref entity.NodeRef, key string) (string, error) {
	attrs, err := b.attributes(ctx, ref)
	if err != nil {
		return "", err
	}
	v, ok := attrs[key]
	if !ok {
		return "", fmt.Errorf("%s attribute of %s: %w", key, ref, entity.ErrNotAvailable)
	}
	return v, nil
}

func (b *BrowserAdapter) attributes(ctx context.Context, ref entity.NodeRef) (map[string]string, error) {
	node, err := b.domNode(ctx, ref)
	if err != nil {
		return nil, err
	}
	return attributeMap(node.Attributes), nil
}

// attributeMap разворачивает плоский список CDP [name, value, name, value, ...].
func attributeMap(flat []string) map[string]string {
	attrs := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		attrs[strings.ToLower(flat[i])] = flat[i+1]
	}
	return attrs
}

func intAttribute(attrs map[string]string, key string) (int, bool) {
	raw, ok := attrs[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// axString: Chrome отдаёт пустую computedString вместо «нет значения», поэтому пустая строка считается отсутствием.
func axString(ref entity.NodeRef, field string, v *proto.AccessibilityAXValue) (string, error) {
	if v == nil || v.Value.Nil() {
		return "", fmt.Errorf("%s of %s: %w", field, ref, entity.ErrNotAvailable)
	}
	s := v.Value.Str()
	if s == "" {
		return "", fmt.Errorf("%s of %s: %w", field, ref, entity.ErrNotAvailable)
	}
	return s, nil
}

func backendID(ref entity.NodeRef) (proto.DOMBackendNodeID, error) {
	n, err := strconv.Atoi(string(ref))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("malformed node reference %q: %w", ref, entity.ErrStaleNode)
	}
	return proto.DOMBackendNodeID(n), nil
}

func refFromBackend(id proto.DOMBackendNodeID) entity.NodeRef {
	return entity.NodeRef(strconv.Itoa(int(id)))
}

// mapError: исчезнувший узел это ErrStaleNode, всё остальное ErrNotAvailable.
func mapError(op string, ref entity.NodeRef, err error) error {
	if isStaleNodeError(err) {
		return fmt.Errorf("%s %s: %v: %w", op, ref, err, entity.ErrStaleNode)
	}
	return fmt.Errorf("%s %s: %v: %w", op, ref, err, entity.ErrNotAvailable)
}

func isStaleNodeError(err error) bool {
	var cdpErr *cdp.Error
	if !errors.As(err, &cdpErr) {
		return false
	}
	msg := strings.ToLower(cdpErr.Message)
	return strings.Contains(msg, "no node") ||
		strings.Contains(msg, "could not find node") ||
		strings.Contains(msg, "node not found")
}
