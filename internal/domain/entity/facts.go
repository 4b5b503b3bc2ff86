package entity

import "sort"

// NodeRef: непрозрачная ссылка на узел доступного дерева хоста.
type NodeRef string

func (r NodeRef) String() string {
	return string(r)
}

// TabIndexState различает «не сказано» и «сказано явно».
type TabIndexState int

const (
	TabIndexNotExposed TabIndexState = iota
	// TabIndexExposed: атрибут tabindex явно выставлен в разметке.
	TabIndexExposed
	// TabIndexDerived: значение известно хосту только косвенно (DOM-свойство tabIndex).
	TabIndexDerived
)

type TabIndex struct {
	State TabIndexState
	Value int
}

func ExposedTabIndex(v int) TabIndex {
	return TabIndex{State: TabIndexExposed, Value: v}
}

func DerivedTabIndex(v int) TabIndex {
	return TabIndex{State: TabIndexDerived, Value: v}
}

func (t TabIndex) Exposed() bool {
	return t.State == TabIndexExposed
}

// Determinable: известно ли хоть какое-то значение tabindex, прямо или косвенно.
func (t TabIndex) Determinable() bool {
	return t.State != TabIndexNotExposed
}

// Виды связей из словаря хоста, в порядке вывода в отчёте.
const (
	RelLabelledBy       = "labelledBy"
	RelDescribedBy      = "describedBy"
	RelControls         = "controls"
	RelOwns             = "owns"
	RelFlowTo           = "flowTo"
	RelDetails          = "details"
	RelErrorMessage     = "errorMessage"
	RelActiveDescendant = "activeDescendant"
)

var RelationshipOrder = []string{
	RelLabelledBy,
	RelDescribedBy,
	RelControls,
	RelOwns,
	RelFlowTo,
	RelDetails,
	RelErrorMessage,
	RelActiveDescendant,
}

type Relationship struct {
	Kind    string
	Targets []string
}

type SetPosition struct {
	PosInSet Optional[int]
	SetSize  Optional[int]
}

// ElementFacts: снимок семантики одного узла на момент чтения.
type ElementFacts struct {
	Ref         NodeRef
	Unavailable bool

	Role        Optional[string]
	States      Optional[[]string]
	Name        Optional[string]
	Value       Optional[string]
	Description Optional[string]
	Tag         Optional[string]

	XMLRoles      Optional[[]string]
	ID            Optional[string]
	Classes       Optional[[]string]
	InputType     Optional[string]
	URL           Optional[string]
	Level         Optional[int]
	Relationships Optional[[]Relationship]
	SetPosition   SetPosition
	TabIndex      TabIndex
}

// UnavailableFacts: минимальный набор фактов для недействительного или исчезнувшего узла.
func UnavailableFacts(ref NodeRef) ElementFacts {
	return ElementFacts{Ref: ref, Unavailable: true}
}

// RoleIs сравнивает нормализованную роль; отсутствующая роль не совпадает ни с чем.
func (f ElementFacts) RoleIs(role string) bool {
	r, ok := f.Role.Get()
	return ok && r == role
}

type AncestorEntry struct {
	Depth int
	Facts ElementFacts
}

type DescendantEntry struct {
	Depth int
	Facts ElementFacts
}

// NormalizeSet возвращает копию без дублей, отсортированную лексикографически.
func NormalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// NormalizeRelationships отбрасывает пустые связи и упорядочивает остальные по словарю хоста;
// неизвестные виды идут следом в лексикографическом порядке. Порядок целей сохраняется.
func NormalizeRelationships(rels []Relationship) []Relationship {
	rank := make(map[string]int, len(RelationshipOrder))
	for i, k := range RelationshipOrder {
		rank[k] = i
	}

	merged := make(map[string][]string, len(rels))
	kinds := make([]string, 0, len(rels))
	for _, r := range rels {
		if r.Kind == "" || len(r.Targets) == 0 {
			continue
		}
		if _, ok := merged[r.Kind]; !ok {
			kinds = append(kinds, r.Kind)
		}
		merged[r.Kind] = append(merged[r.Kind], r.Targets...)
	}

	sort.SliceStable(kinds, func(i, j int) bool {
		ri, iKnown := rank[kinds[i]]
		rj, jKnown := rank[kinds[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return kinds[i] < kinds[j]
		}
	})

	out := make([]Relationship, 0, len(kinds))
	for _, k := range kinds {
		targets := make([]string, len(merged[k]))
		copy(targets, merged[k])
		out = append(out, Relationship{Kind: k, Targets: targets})
	}
	return out
}
