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

func TestFilterHTML(t *testing.T) {
	c, err := filter.NewClassifier([]string{"English"})
	require.NoError(t, err)

	out, res, err := FilterHTML(strings.NewReader(calendarHTML), Selectors{}, c)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Hidden)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)

	assert.True(t, Hidden(doc.Find("li#a")))
	assert.False(t, Hidden(doc.Find("li#b")))
	assert.True(t, Hidden(doc.Find("li#c")))
}

func TestFilterHTMLIsStable(t *testing.T) {
	c, err := filter.NewClassifier([]string{"English"})
	require.NoError(t, err)

	first, _, err := FilterHTML(strings.NewReader(calendarHTML), Selectors{}, c)
	require.NoError(t, err)

	second, res, err := FilterHTML(bytes.NewReader(first), Selectors{}, c)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Hidden)
	assert.Equal(t, string(first), string(second))
}
