package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"element-inspector/internal/domain/entity"
)

const DocumentTitle = "HTML Element Inspector"

// HTML рендерит отчёт как документ с заголовками: h1 для заголовка отчёта,
// h2 для секции и <pre> для её строк.
func HTML(report *entity.Report) string {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	head.AppendChild(withText(element(atom.Title), DocumentTitle))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	if report.Unavailable {
		body.AppendChild(withText(element(atom.P), report.Message))
	} else {
		body.AppendChild(withText(element(atom.H1), report.Title))
		for _, s := range report.Sections {
			body.AppendChild(withText(element(atom.H2), string(s.Name)))
			body.AppendChild(withText(element(atom.Pre), strings.Join(s.Lines, "\n")))
		}
	}

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		// strings.Builder не возвращает ошибок записи.
		return report.Text()
	}
	sb.WriteString("\n")
	return sb.String()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
