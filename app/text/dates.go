package text

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// DefaultMonths maps lower-case month names and abbreviations to months.
var DefaultMonths = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// DateParser turns timestamps and "Month DD, YYYY" strings into ISO calendar dates.
// Every method returns "" for input it cannot read.
type DateParser struct {
	months map[string]time.Month
	human  *regexp.Regexp
}

func NewDateParser(months map[string]time.Month) *DateParser {
	names := make([]string, 0, len(months))
	for name := range months {
		names = append(names, regexp.QuoteMeta(name))
	}
	// Longest first so "sept" wins over "sep".
	slices.SortFunc(names, func(a, b string) int { return len(b) - len(a) })

	pattern := fmt.Sprintf(`(?i)\b(%s)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`, strings.Join(names, "|"))

	return &DateParser{
		months: months,
		human:  regexp.MustCompile(pattern),
	}
}

var defaultDateParser = NewDateParser(DefaultMonths)

// ParseHumanDate reads a "Month DD, YYYY" date with the default month table.
func ParseHumanDate(s string) string {
	return defaultDateParser.ParseHuman(s)
}

// Parse tries the timestamp layouts first and the human form second.
func (p *DateParser) Parse(s string) string {
	if d := p.ParseTimestamp(s); d != "" {
		return d
	}
	return p.ParseHuman(s)
}

// ParseTimestamp reads machine timestamps (datetime attributes, feed dates).
// The calendar date is taken in the timestamp's own offset; zone-less input is UTC.
func (p *DateParser) ParseTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t.Format("2006-01-02")
	}

	if len(s) > 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}

// ParseHuman finds the first "Month DD, YYYY" date in s.
func (p *DateParser) ParseHuman(s string) string {
	m := p.human.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return p.calendar(m)
}

// ParseHumanExact reads s only when the date is all of it, give or take
// surrounding spaces and punctuation. "Oct. 15, 2025:" qualifies, a sentence
// mentioning a date does not.
func (p *DateParser) ParseHumanExact(s string) string {
	loc := p.human.FindStringSubmatchIndex(s)
	if loc == nil {
		return ""
	}
	if !onlyPunct(s[:loc[0]]) || !onlyPunct(s[loc[1]:]) {
		return ""
	}

	m := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		m = append(m, s[loc[i]:loc[i+1]])
	}
	return p.calendar(m)
}

func onlyPunct(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}

func (p *DateParser) calendar(m []string) string {
	month, ok := p.months[strings.ToLower(m[1])]
	if !ok {
		return ""
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return ""
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return ""
	}

	// Reject days that roll over into the next month.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
