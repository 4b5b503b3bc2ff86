package service

import (
	"fmt"
	"strconv"
	"strings"

	"element-inspector/internal/domain/entity"
)

// InclusionFunc позволяет подменить политику в тестах.
type InclusionFunc func(field Field, facts entity.ElementFacts) bool

type ReportAssembler struct {
	include InclusionFunc
}

func NewReportAssembler() *ReportAssembler {
	return &ReportAssembler{include: Include}
}

func NewReportAssemblerWithPolicy(include InclusionFunc) *ReportAssembler {
	if include == nil {
		include = Include
	}
	return &ReportAssembler{include: include}
}

// Assemble builds the basic report. Sections come in fixed order; empty ones are dropped.
func (a *ReportAssembler) Assemble(focused entity.ElementFacts, ancestors []entity.AncestorEntry) *entity.Report {
	report := &entity.Report{Title: entity.ReportTitle}
	a.addFocusedSections(report, focused)
	report.AddSection(entity.SectionAncestors, a.ancestorLines(ancestors))
	return report
}

// AssembleAdvanced добавляет к базовому отчёту секцию потомков.
func (a *ReportAssembler) AssembleAdvanced(focused entity.ElementFacts, ancestors []entity.AncestorEntry, descendants []entity.DescendantEntry, truncated bool) *entity.Report {
	report := a.Assemble(focused, ancestors)
	report.Title = entity.AdvancedReportTitle

	lines := make([]string, 0, len(descendants)+1)
	for _, d := range descendants {
		indent := strings.Repeat("  ", max(d.Depth-1, 0))
		lines = append(lines, indent+"- "+a.summary(d.Facts))
	}
	if truncated && len(lines) > 0 {
		lines = append(lines, "... truncated (limits reached)")
	}
	report.AddSection(entity.SectionDescendants, lines)
	return report
}

// AddDocument дописывает последней секцией адрес документа, в котором находится элемент.
func (a *ReportAssembler) AddDocument(report *entity.Report, url string) {
	if report == nil || report.Unavailable || url == "" {
		return
	}
	report.AddSection(entity.SectionDocument, []string{"URL: " + oneLine(url)})
}

func (a *ReportAssembler) addFocusedSections(report *entity.Report, f entity.ElementFacts) {
	var identity []string
	if f.Unavailable {
		identity = append(identity, "Status: unavailable")
	}
	if a.include(FieldRole, f) {
		identity = append(identity, "Role: "+f.Role.OrZero())
	}
	if a.include(FieldTag, f) {
		identity = append(identity, "Tag: "+f.Tag.OrZero())
	}
	if a.include(FieldName, f) {
		identity = append(identity, "Name: "+oneLine(f.Name.OrZero()))
	}
	if a.include(FieldValue, f) {
		identity = append(identity, "Value: "+oneLine(f.Value.OrZero()))
	}
	if a.include(FieldDescription, f) {
		identity = append(identity, "Description: "+oneLine(f.Description.OrZero()))
	}
	report.AddSection(entity.SectionIdentity, identity)

	var state []string
	if a.include(FieldStates, f) {
		state = append(state, "States: "+joinLine(entity.NormalizeSet(f.States.OrZero())))
	}
	report.AddSection(entity.SectionState, state)

	var attrs []string
	if a.include(FieldXMLRoles, f) {
		attrs = append(attrs, "XML roles: "+joinLine(entity.NormalizeSet(f.XMLRoles.OrZero())))
	}
	if a.include(FieldID, f) {
		attrs = append(attrs, "ID: "+oneLine(f.ID.OrZero()))
	}
	if a.include(FieldClasses, f) {
		attrs = append(attrs, "Class: "+joinLine(f.Classes.OrZero()))
	}
	if a.include(FieldInputType, f) {
		attrs = append(attrs, "Type: "+oneLine(f.InputType.OrZero()))
	}
	if a.include(FieldURL, f) {
		attrs = append(attrs, "URL: "+oneLine(f.URL.OrZero()))
	}
	if a.include(FieldLevel, f) {
		attrs = append(attrs, "Level: "+strconv.Itoa(f.Level.OrZero()))
	}
	if a.include(FieldSetPosition, f) {
		pos, _ := f.SetPosition.PosInSet.Get()
		size, _ := f.SetPosition.SetSize.Get()
		attrs = append(attrs, fmt.Sprintf("Position: %d of %d", pos, size))
	}
	if a.include(FieldTabIndex, f) {
		line := "Tabindex: " + strconv.Itoa(f.TabIndex.Value)
		if f.TabIndex.State == entity.TabIndexDerived {
			line += " (implicit)"
		}
		attrs = append(attrs, line)
	}
	report.AddSection(entity.SectionAttributes, attrs)

	var rels []string
	if a.include(FieldRelationships, f) {
		for _, r := range f.Relationships.OrZero() {
			rels = append(rels, oneLine(r.Kind)+": "+joinLine(r.Targets))
		}
	}
	report.AddSection(entity.SectionRelationships, rels)
}

func (a *ReportAssembler) ancestorLines(ancestors []entity.AncestorEntry) []string {
	lines := make([]string, 0, len(ancestors))
	for _, e := range ancestors {
		lines = append(lines, fmt.Sprintf("%d. %s", e.Depth, a.summary(e.Facts)))
	}
	return lines
}

// summary: role, "name", <tag>; только то, что пропустила политика.
func (a *ReportAssembler) summary(f entity.ElementFacts) string {
	if f.Unavailable {
		return "(unavailable)"
	}
	parts := make([]string, 0, 3)
	if a.include(FieldRole, f) {
		parts = append(parts, f.Role.OrZero())
	}
	if a.include(FieldName, f) {
		parts = append(parts, strconv.Quote(lineBreaks.Replace(f.Name.OrZero())))
	}
	if a.include(FieldTag, f) {
		parts = append(parts, "<"+f.Tag.OrZero()+">")
	}
	if len(parts) == 0 {
		return "(no exposed facts)"
	}
	return strings.Join(parts, " ")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// joinLine склеивает значения через ", " так, чтобы результат остался одной строкой.
func joinLine(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, oneLine(v))
	}
	return strings.Join(parts, ", ")
}

func oneLine(s string) string {
	if s == "" {
		return `""`
	}
	return lineBreaks.Replace(s)
}
