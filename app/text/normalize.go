// Package text holds the string normalization used across extraction and matching:
// whitespace cleanup, slugs, human and machine date parsing, and outlet attribution.
package text

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// Clean collapses whitespace runs to a single space and trims both ends.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripTags removes markup, decodes entities and cleans whitespace.
func StripTags(s string) string {
	return Clean(html.UnescapeString(tagPattern.ReplaceAllString(s, " ")))
}

// Slugify derives the URL-safe identifier used to address per-subject tag streams.
//
//	Slugify("Jalen Brunson")   == "jalen_brunson"
//	Slugify("Nikola Jokić")    == "nikola_jokic"
//	Slugify("Texas A&M")       == "texas_a_and_m"
func Slugify(s string) string {
	// transform.Chain keeps internal state, so build one per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}

	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, "&", " and ")
	out = nonAlnumPattern.ReplaceAllString(out, "_")

	return strings.Trim(out, "_")
}

// Truncate shortens s to at most n runes, cutting at a word boundary when one is close.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	cut := string(r[:n])
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:-") + "…"
}
