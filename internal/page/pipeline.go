package page

import (
	"bytes"
	"io"

	"github.com/brogergvhs/dubfilter/internal/filter"
)

// FilterHTML runs one pass over the page read from r and returns the
// rendered result.
func FilterHTML(r io.Reader, sel Selectors, c *filter.Classifier) ([]byte, filter.Result, error) {
	doc, err := Parse(r, sel)
	if err != nil {
		return nil, filter.Result{}, err
	}

	res := filter.Apply(doc, c)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, res, err
	}

	return buf.Bytes(), res, nil
}
