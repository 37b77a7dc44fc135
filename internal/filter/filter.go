package filter

// Container is the element that wraps one calendar entry. Hide must only
// change its visibility; the element stays in the page.
type Container interface {
	Hide()
}

// Entry is one calendar row as seen by a single pass. Container is nil when
// the title element has no enclosing container.
type Entry struct {
	Title     string
	Container Container
}

// TitleSource yields the entries currently present on a page.
type TitleSource interface {
	Entries() []Entry
}

type Result struct {
	Scanned  int
	Hidden   int
	Orphaned int

	HiddenTitles   []string
	OrphanedTitles []string
}

// Apply hides the container of every dubbed entry in src. An empty source is
// a no-op. Entries without a container are skipped.
func Apply(src TitleSource, c *Classifier) Result {
	var res Result
	if src == nil || c == nil {
		return res
	}

	for _, e := range src.Entries() {
		res.Scanned++

		if !c.IsDub(e.Title) {
			continue
		}

		if e.Container == nil {
			res.Orphaned++
			res.OrphanedTitles = append(res.OrphanedTitles, e.Title)
			continue
		}

		e.Container.Hide()
		res.Hidden++
		res.HiddenTitles = append(res.HiddenTitles, e.Title)
	}

	return res
}
