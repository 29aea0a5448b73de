package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultLinkRules cover the headline and card templates seen on search and index pages.
var DefaultLinkRules = []Rule{
	{Name: "entry-title", Selector: "h2.entry-title a, h3.entry-title a", Attr: "href"},
	{Name: "headline", Selector: "article h2 a, article h3 a, .headline a", Attr: "href"},
	{Name: "card", Selector: ".post-card a, .card a, .rumor a, article a", Attr: "href"},
	{Name: "any", Selector: "a", Attr: "href"},
}

// LinkFilter keeps article URLs: the path must contain Marker, must not contain any
// of Skip, and the URL must not be one of the Exclude pages (typically the bare
// category landing page).
type LinkFilter struct {
	Marker  string
	Skip    []string
	Exclude []string
}

// DefaultSkip drops pagination, tag and feed links that share the article marker.
var DefaultSkip = []string{"/page/", "/tag/", "/feed"}

func (f LinkFilter) Accept(link string) bool {
	if f.Marker != "" && !strings.Contains(link, f.Marker) {
		return false
	}
	for _, skip := range f.Skip {
		if strings.Contains(link, skip) {
			return false
		}
	}
	normalized := NormalizeURL(link)
	for _, excluded := range f.Exclude {
		if normalized == NormalizeURL(excluded) {
			return false
		}
	}
	return true
}

// Links returns the accepted links of the first rule that yields any, in document order.
func (e *Extractor) Links(data []byte, pageURL string, rules []Rule, filter LinkFilter) ([]string, string) {
	doc, err := parseHTML(data)
	if err != nil {
		return nil, ""
	}
	base := parseBase(pageURL)

	for _, rule := range rules {
		seen := make(map[string]bool)
		var links []string

		doc.Find(rule.Selector).Each(func(_ int, a *goquery.Selection) {
			link := resolveURL(base, a.AttrOr(rule.Attr, ""))
			if link == "" || !filter.Accept(link) {
				return
			}
			key := NormalizeURL(link)
			if seen[key] {
				return
			}
			seen[key] = true
			links = append(links, link)
		})

		if len(links) > 0 {
			return links, rule.Name
		}
	}

	return nil, ""
}
