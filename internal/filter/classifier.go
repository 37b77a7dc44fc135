package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// LegacyMarker is the suffix older calendar layouts used for dubbed
// releases, e.g. "Show (English Dub)".
const LegacyMarker = " Dub)"

type Verdict int

const (
	Keep Verdict = iota
	Legacy
	Language
)

func (v Verdict) String() string {
	switch v {
	case Legacy:
		return "dub (legacy marker)"
	case Language:
		return "dub (language)"
	default:
		return "keep"
	}
}

// Classifier decides whether a calendar title belongs to a dubbed release.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	re     *regexp.Regexp
	legacy bool
}

type Option func(*Classifier)

// WithLegacyMarker toggles the " Dub)" substring check. It is on by default.
func WithLegacyMarker(on bool) Option {
	return func(c *Classifier) {
		c.legacy = on
	}
}

func NewClassifier(languages []string, opts ...Option) (*Classifier, error) {
	c := &Classifier{legacy: true}
	for _, o := range opts {
		o(c)
	}

	src := buildPattern(languages)
	if src == "" {
		return c, nil
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile language pattern: %w", err)
	}
	c.re = re

	return c, nil
}

// buildPattern matches a title ending in "(<language>)", optionally
// followed by whitespace. The class is the browser's \s: Go's \s lacks \v,
// the Unicode separators (\p{Z}, NBSP among them) and U+FEFF.
func buildPattern(languages []string) string {
	alts := make([]string, 0, len(languages))
	seen := map[string]bool{}

	for _, l := range languages {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		alts = append(alts, regexp.QuoteMeta(l))
	}

	if len(alts) == 0 {
		return ""
	}

	return `\((?:` + strings.Join(alts, "|") + `)\)[\s\v\p{Z}\x{FEFF}]*$`
}

func (c *Classifier) Classify(title string) Verdict {
	if c.legacy && strings.Contains(title, LegacyMarker) {
		return Legacy
	}
	if c.re != nil && c.re.MatchString(title) {
		return Language
	}

	return Keep
}

func (c *Classifier) IsDub(title string) bool {
	return c.Classify(title) != Keep
}

// Pattern returns the compiled language pattern, or "" when no language
// is configured.
func (c *Classifier) Pattern() string {
	if c.re == nil {
		return ""
	}

	return c.re.String()
}
