package entity

import "strings"

type SectionName string

const (
	SectionIdentity      SectionName = "Identity"
	SectionState         SectionName = "State"
	SectionAttributes    SectionName = "Attributes"
	SectionRelationships SectionName = "Relationships"
	SectionAncestors     SectionName = "Ancestor Chain"
	SectionDescendants   SectionName = "Descendants"
	SectionDocument      SectionName = "Document"
)

const (
	ReportTitle         = "Element Information"
	AdvancedReportTitle = "Advanced Element Information"

	MsgNotBrowsing = "Element inspection is not available outside browsing context."
	MsgNoFocus     = "No focused element is available for inspection."
	MsgInternal    = "Element inspection failed; the element is not available."
)

type Section struct {
	Name  SectionName
	Lines []string
}

// Report: упорядоченный набор секций. Unavailable-отчёт состоит из одной строки Message.
type Report struct {
	Title       string
	Sections    []Section
	Unavailable bool
	Message     string
}

func UnavailableReport(msg string) *Report {
	return &Report{Unavailable: true, Message: msg}
}

// AddSection добавляет секцию; пустые секции не попадают в отчёт.
func (r *Report) AddSection(name SectionName, lines []string) {
	if len(lines) == 0 {
		return
	}
	r.Sections = append(r.Sections, Section{Name: name, Lines: lines})
}

func (r *Report) Section(name SectionName) (Section, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Text рендерит отчёт в стабильный текстовый блок.
func (r *Report) Text() string {
	var sb strings.Builder
	if r.Unavailable {
		sb.WriteString(r.Message)
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(r.Title)
	sb.WriteString("\n")
	for _, s := range r.Sections {
		sb.WriteString("\n")
		sb.WriteString(string(s.Name))
		sb.WriteString(":\n")
		for _, line := range s.Lines {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (r *Report) String() string {
	return r.Text()
}
