// Package matcher builds the predicates that decide whether a document mentions a subject.
package matcher

import (
	"regexp"
	"strings"
)

type Mode string

const (
	ModeGeneric Mode = ""
	ModePlayer  Mode = "player"
	ModeTeam    Mode = "team"
)

// ParseMode maps the request parameter to a Mode; anything unknown is generic.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePlayer:
		return ModePlayer
	case ModeTeam:
		return ModeTeam
	default:
		return ModeGeneric
	}
}

// Predicate reports whether text mentions the subject. Predicates are pure and reusable.
type Predicate func(text string) bool

type Builder struct {
	aliases Aliases
}

func NewBuilder(aliases Aliases) *Builder {
	return &Builder{aliases: aliases}
}

// Key reduces a team name to its lower-case letters.
func Key(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (b *Builder) Build(subject string, mode Mode) Predicate {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return func(string) bool { return false }
	}

	switch mode {
	case ModeTeam:
		return b.team(subject)
	case ModePlayer:
		return player(subject)
	default:
		return containsAny([]string{subject})
	}
}

func (b *Builder) team(subject string) Predicate {
	forms, ok := b.aliases[Key(subject)]
	if !ok {
		forms = []string{subject}
	}
	return containsAny(forms)
}

// player matches any name part as a whole word; the last part is listed
// on its own so last-name-only mentions always match.
func player(subject string) Predicate {
	parts := strings.Fields(subject)
	quoted := make([]string, 0, len(parts)+1)
	for _, part := range parts {
		quoted = append(quoted, regexp.QuoteMeta(part))
	}
	quoted = append(quoted, regexp.QuoteMeta(parts[len(parts)-1]))

	re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	return re.MatchString
}

func containsAny(forms []string) Predicate {
	lowered := make([]string, 0, len(forms))
	for _, f := range forms {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			lowered = append(lowered, f)
		}
	}
	return func(text string) bool {
		text = strings.ToLower(text)
		for _, f := range lowered {
			if strings.Contains(text, f) {
				return true
			}
		}
		return false
	}
}
