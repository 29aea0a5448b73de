// Package extract pulls rumor fields out of feeds, search and index pages, tag streams
// and single articles. Nothing here touches the network; callers pass document bytes.
package extract

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/rumor-comb/app/text"
)

type Extractor struct {
	dates   *text.DateParser
	sources text.SourceInferrer
}

func NewExtractor(dates *text.DateParser, sources text.SourceInferrer) *Extractor {
	return &Extractor{
		dates:   dates,
		sources: sources,
	}
}

// Rule is one way of reading a value out of a document. Rules are tried in order.
type Rule struct {
	Name     string
	Selector string
	Attr     string // element text when empty
}

// Apply returns the first non-empty value the rule finds under s.
func (r Rule) Apply(s *goquery.Selection) (string, bool) {
	var value string
	s.Find(r.Selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if r.Attr == "" {
			value = text.Clean(el.Text())
		} else {
			value = strings.TrimSpace(el.AttrOr(r.Attr, ""))
		}
		return value == ""
	})
	return value, value != ""
}

// FirstMatch returns the value of the first rule that matches and its name.
func FirstMatch(s *goquery.Selection, rules []Rule) (string, string) {
	for _, rule := range rules {
		if value, ok := rule.Apply(s); ok {
			return value, rule.Name
		}
	}
	return "", ""
}

func parseHTML(data []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(data))
}

// resolveURL makes href absolute against base and keeps only http(s) links.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}

	ref.Fragment = ""
	return ref.String()
}

func parseBase(pageURL string) *url.URL {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	return base
}

// NormalizeURL drops scheme, fragment and trailing slash so equivalent URLs compare equal.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimRight(strings.ToLower(raw), "/")
	}

	normalized := strings.ToLower(u.Host) + strings.TrimRight(u.EscapedPath(), "/")
	if u.RawQuery != "" {
		normalized += "?" + u.RawQuery
	}
	return normalized
}
