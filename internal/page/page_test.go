package page

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/dubfilter/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calendarHTML = `<!DOCTYPE html>
<html><body>
<ul class="releases">
  <li id="a"><article><h1><cite itemprop="name">Show A (English)</cite></h1></article></li>
  <li id="b"><article><h1><cite itemprop="name">Show B (日本語)</cite></h1></article></li>
  <li id="c" style="color: red"><article><h1><cite itemprop="name">Show C Special Dub)</cite></h1></article></li>
</ul>
<cite>Loose (English)</cite>
</body></html>`

func mustParse(t *testing.T, src string) *Document {
	t.Helper()

	d, err := Parse(strings.NewReader(src), Selectors{})
	require.NoError(t, err)

	return d
}

func hidden(d *Document, sel string) bool {
	return Hidden(d.Selection().Find(sel))
}

func TestEntries(t *testing.T) {
	d := mustParse(t, calendarHTML)

	entries := d.Entries()
	require.Len(t, entries, 4)

	assert.Equal(t, "Show A (English)", entries[0].Title)
	assert.NotNil(t, entries[0].Container)
	assert.Equal(t, "Show B (日本語)", entries[1].Title)
	assert.Equal(t, "Loose (English)", entries[3].Title)
	assert.Nil(t, entries[3].Container)
}

func TestApplyHidesMatchingContainers(t *testing.T) {
	d := mustParse(t, calendarHTML)
	c, err := filter.NewClassifier([]string{"English"})
	require.NoError(t, err)

	res := filter.Apply(d, c)

	assert.Equal(t, 4, res.Scanned)
	assert.Equal(t, 2, res.Hidden)
	assert.Equal(t, 1, res.Orphaned)

	assert.True(t, hidden(d, "li#a"))
	assert.False(t, hidden(d, "li#b"))
	assert.True(t, hidden(d, "li#c"))

	style, _ := d.Selection().Find("li#c").Attr("style")
	assert.Equal(t, "color: red; display: none;", style)

	assert.Equal(t, 3, d.Selection().Find("li").Length(), "containers must stay in the page")
	assert.Equal(t, "Show A (English)", d.Selection().Find("li#a cite").Text())
}

func TestApplyTwiceRendersIdentically(t *testing.T) {
	d := mustParse(t, calendarHTML)
	c, err := filter.NewClassifier([]string{"English"})
	require.NoError(t, err)

	filter.Apply(d, c)
	var once bytes.Buffer
	require.NoError(t, d.Render(&once))

	filter.Apply(d, c)
	var twice bytes.Buffer
	require.NoError(t, d.Render(&twice))

	assert.Equal(t, once.String(), twice.String())
}

func TestCustomSelectors(t *testing.T) {
	src := `<div class="row"><span class="t">X (Deutsch)</span></div><div class="row"><span class="t">Y</span></div>`
	d, err := Parse(strings.NewReader(src), Selectors{Title: "span.t", Container: "div.row"})
	require.NoError(t, err)

	c, err := filter.NewClassifier([]string{"Deutsch"})
	require.NoError(t, err)

	res := filter.Apply(d, c)
	assert.Equal(t, 1, res.Hidden)

	rows := d.Selection().Find("div.row")
	assert.True(t, Hidden(rows.Eq(0)))
	assert.False(t, Hidden(rows.Eq(1)))
}

func TestNoTitlesIsNoop(t *testing.T) {
	d := mustParse(t, `<html><body><ul><li>nothing here</li></ul></body></html>`)
	c, err := filter.NewClassifier([]string{"English"})
	require.NoError(t, err)

	assert.Equal(t, filter.Result{}, filter.Apply(d, c))
}

func TestRenderKeepsDocument(t *testing.T) {
	d := mustParse(t, calendarHTML)

	var buf bytes.Buffer
	require.NoError(t, d.Render(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<li id="b">`)

	again, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Find("li").Length())
}

func TestHiddenStyle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "display: none;"},
		{"color: red", "color: red; display: none;"},
		{"display: block; color: red;", "color: red; display: none;"},
		{"display:none", "display:none"},
		{"display: none; display: block", "display: none;"},
		{"DISPLAY: flex !important", "display: none;"},
		{"color: red; display: block; margin: 0", "color: red; margin: 0; display: none;"},
		{"background: url('data:image/png;base64,AAAA')", "background: url('data:image/png;base64,AAAA'); display: none;"},
		{`content: "a;b";display:flex`, `content: "a;b"; display: none;`},
		{"background:url(a.png);color:red", "background:url(a.png);color:red; display: none;"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, hiddenStyle(tt.in))
		})
	}
}

func TestHideKeepsOtherDeclarations(t *testing.T) {
	src := `<ul><li id="a" style="background: url('data:image/png;base64,AAAA')"><cite>Show A (English)</cite></li></ul>`
	d := mustParse(t, src)
	c, err := filter.NewClassifier([]string{"English"})
	require.NoError(t, err)

	filter.Apply(d, c)

	style, _ := d.Selection().Find("li#a").Attr("style")
	assert.Equal(t, "background: url('data:image/png;base64,AAAA'); display: none;", style)
	assert.True(t, hidden(d, "li#a"))
}

func TestHidden(t *testing.T) {
	d := mustParse(t, `<ul><li id="a" style="display: none">x</li><li id="b" style="display:none; display: block">y</li><li id="c">z</li></ul>`)

	assert.True(t, hidden(d, "#a"))
	assert.False(t, hidden(d, "#b"))
	assert.False(t, hidden(d, "#c"))

	d = mustParse(t, `<ul><li id="q" style="content: 'display:none;x'">x</li></ul>`)
	assert.False(t, hidden(d, "#q"))
}
