package text

import (
	"cmp"
	"regexp"
	"strings"
)

// outletWord allows inner dots ("N.Y") but stops at a sentence end.
const outletWord = `[\w&'’]*(?:\.[\w&'’]+)*`

var (
	viaPattern  = regexp.MustCompile(`(?i)\bvia\s+(?-i:([A-Z]` + outletWord + `(?:\s+[A-Z0-9]` + outletWord + `){0,5}))`)
	dashPattern = regexp.MustCompile(`\s[-–—]\s*([A-Z]` + outletWord + `(?:\s+[A-Z0-9]` + outletWord + `){0,5})[.!]?$`)
)

// SourceInferrer attributes a rumor to the outlet credited in its text.
type SourceInferrer struct {
	Fallback string
}

func NewSourceInferrer(fallback string) SourceInferrer {
	return SourceInferrer{Fallback: fallback}
}

// Infer accepts plain text or raw markup. It tries a "via Outlet" credit,
// then a trailing "- Outlet" credit, then the fallback label.
func (si SourceInferrer) Infer(s string) string {
	plain := StripTags(s)

	if m := viaPattern.FindStringSubmatch(plain); m != nil {
		if name := trimOutlet(m[1]); name != "" {
			return name
		}
	}

	if m := dashPattern.FindStringSubmatch(plain); m != nil {
		if name := trimOutlet(m[1]); name != "" {
			return name
		}
	}

	return si.Fallback
}

// FromAnchor uses the text of a credit link as the outlet name.
func (si SourceInferrer) FromAnchor(anchorText string) string {
	return cmp.Or(trimOutlet(StripTags(anchorText)), si.Fallback)
}

func trimOutlet(s string) string {
	return strings.TrimRight(Clean(s), ".,;:!")
}
