// Package rumors acquires rumor items about a subject by trying acquisition strategies
// in order, then deduplicates, ranks and windows what the winning strategy returned.
package rumors

import (
	"errors"
	"strings"

	"github.com/lysyi3m/rumor-comb/app/matcher"
	"github.com/lysyi3m/rumor-comb/app/text"
)

const (
	PlaceholderTitle = "Untitled rumor"
	TitleKeyLength   = 60
)

var ErrMissingSubject = errors.New("missing subject")

type Item struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Date    string `json:"date"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// Subject is one resolved subject of a lookup. It lives for a single request.
type Subject struct {
	Name  string
	Mode  matcher.Mode
	Slug  string
	Match matcher.Predicate
}

type Request struct {
	Subject string
	Mode    string
	Debug   bool
}

type Result struct {
	Subject string
	Items   []Item
	Trace   *Trace
}

// SplitSubjects splits a comma separated subject list, dropping blank entries.
func SplitSubjects(raw string) []string {
	var subjects []string
	for _, part := range strings.Split(raw, ",") {
		if name := text.Clean(part); name != "" {
			subjects = append(subjects, name)
		}
	}
	return subjects
}
