// Package page exposes a parsed HTML calendar page as a filter.TitleSource.
// Hiding a container only rewrites its style attribute; nodes are never
// removed so the rendered layout does not reflow around the gaps.
package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/dubfilter/internal/filter"
	"golang.org/x/net/html"
)

const (
	DefaultTitleSelector     = "cite"
	DefaultContainerSelector = "li"
)

type Selectors struct {
	Title     string
	Container string
}

func (s Selectors) withDefaults() Selectors {
	if strings.TrimSpace(s.Title) == "" {
		s.Title = DefaultTitleSelector
	}
	if strings.TrimSpace(s.Container) == "" {
		s.Container = DefaultContainerSelector
	}

	return s
}

type Document struct {
	doc *goquery.Document
	sel Selectors
}

func Parse(r io.Reader, sel Selectors) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return FromDocument(doc, sel), nil
}

func FromDocument(doc *goquery.Document, sel Selectors) *Document {
	return &Document{doc: doc, sel: sel.withDefaults()}
}

// Entries walks every title element in document order. The container is the
// closest ancestor (or the element itself) matching the container selector.
func (d *Document) Entries() []filter.Entry {
	var out []filter.Entry

	d.doc.Find(d.sel.Title).Each(func(_ int, s *goquery.Selection) {
		e := filter.Entry{Title: s.Text()}

		if parent := s.Closest(d.sel.Container); parent.Length() > 0 {
			e.Container = container{sel: parent.First()}
		}

		out = append(out, e)
	})

	return out
}

func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

func (d *Document) Render(w io.Writer) error {
	if len(d.doc.Nodes) == 0 {
		return nil
	}

	if err := html.Render(w, d.doc.Nodes[0]); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

type container struct {
	sel *goquery.Selection
}

func (c container) Hide() {
	style, _ := c.sel.Attr("style")
	next := hiddenStyle(style)
	if next != style {
		c.sel.SetAttr("style", next)
	}
}

// Hidden reports whether sel carries an inline display:none.
func Hidden(sel *goquery.Selection) bool {
	style, ok := sel.Attr("style")
	if !ok {
		return false
	}

	decls := scanDecls(style)
	for i := len(decls) - 1; i >= 0; i-- {
		if k, v, ok := declKV(decls[i].text(style)); ok && k == "display" {
			return strings.EqualFold(v, "none")
		}
	}

	return false
}

// hiddenStyle returns style with display set to none. Declarations other
// than display keep their exact text; an already hidden style is returned
// unchanged.
func hiddenStyle(style string) string {
	decls := scanDecls(style)

	var display []decl
	for _, d := range decls {
		if k, _, ok := declKV(d.text(style)); ok && k == "display" {
			display = append(display, d)
		}
	}

	if len(display) == 1 && display[0] == decls[len(decls)-1] {
		if _, v, _ := declKV(display[0].text(style)); strings.EqualFold(v, "none") {
			return style
		}
	}

	rest := style
	if len(display) > 0 {
		var b strings.Builder
		pos := 0
		for _, d := range display {
			b.WriteString(style[pos:d.start])
			pos = d.next
		}
		b.WriteString(style[pos:])
		rest = b.String()
	}

	rest = strings.TrimRight(rest, " \t\r\n\f;")
	if strings.TrimSpace(rest) == "" {
		return "display: none;"
	}

	return rest + "; display: none;"
}

// decl is one declaration in a style attribute: style[start:end] is its
// text, next is where the following declaration may begin.
type decl struct {
	start, end, next int
}

func (d decl) text(style string) string {
	return style[d.start:d.end]
}

// scanDecls splits a style attribute on the semicolons that end
// declarations, skipping those inside quotes or parentheses such as
// url(data:image/png;base64,...).
func scanDecls(style string) []decl {
	var out []decl

	emit := func(start, end, next int) {
		if strings.TrimSpace(style[start:end]) != "" {
			out = append(out, decl{start: start, end: end, next: next})
		}
	}

	start, depth := 0, 0
	var quote byte

	for i := 0; i < len(style); i++ {
		c := style[i]

		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			next := i + 1
			for next < len(style) && isSpace(style[next]) {
				next++
			}
			emit(start, i, next)
			start = next
			i = next - 1
		}
	}
	emit(start, len(style), len(style))

	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func declKV(d string) (string, string, bool) {
	k, v, ok := strings.Cut(d, ":")
	if !ok {
		return "", "", false
	}

	v = strings.TrimSpace(v)
	v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))

	return strings.ToLower(strings.TrimSpace(k)), v, true
}
