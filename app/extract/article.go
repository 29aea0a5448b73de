package extract

import (
	"bytes"
	"cmp"
	"net/url"
	"regexp"
	"strings"

	"codeberg.org/readeck/go-readability"
	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/rumor-comb/app/text"
)

var (
	TitleRules = []Rule{
		{Name: "entry-title", Selector: "h1.entry-title"},
		{Name: "h1", Selector: "h1"},
		{Name: "h2", Selector: "h2"},
		{Name: "document-title", Selector: "title"},
	}

	// DateRules read machine timestamps only; visible dates are not trusted here.
	DateRules = []Rule{
		{Name: "time", Selector: "time[datetime]", Attr: "datetime"},
		{Name: "og-published", Selector: `meta[property="article:published_time"]`, Attr: "content"},
		{Name: "itemprop-published", Selector: `meta[itemprop="datePublished"]`, Attr: "content"},
	}

	// MainSelectors locate the article body region, most specific first.
	MainSelectors = []string{
		"article .entry-content",
		".entry-content",
		".article-content",
		"article",
		"main",
	}

	jsonLDDatePattern = regexp.MustCompile(`"datePublished"\s*:\s*"([^"]+)"`)
)

// Article is a hydrated single page.
type Article struct {
	URL       string
	Title     string
	Date      string
	Snippet   string
	Body      string
	Source    string
	TitleRule string
	DateRule  string
}

// Article extracts title, authoritative date, first paragraph, body text and credited
// outlet from one article page. Missing fields are left empty.
func (e *Extractor) Article(data []byte, pageURL string) (Article, error) {
	doc, err := parseHTML(data)
	if err != nil {
		return Article{}, err
	}

	article := Article{URL: pageURL}

	article.Title, article.TitleRule = FirstMatch(doc.Selection, TitleRules)

	if raw, rule := FirstMatch(doc.Selection, DateRules); raw != "" {
		article.Date = e.dates.ParseTimestamp(raw)
		article.DateRule = rule
	}
	if article.Date == "" {
		doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
			if m := jsonLDDatePattern.FindStringSubmatch(script.Text()); m != nil {
				article.Date = e.dates.ParseTimestamp(m[1])
				article.DateRule = "json-ld"
			}
			return article.Date == ""
		})
	}

	region := mainRegion(doc)
	region.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		article.Snippet = text.Clean(p.Text())
		return article.Snippet == ""
	})
	article.Snippet = cmp.Or(article.Snippet, article.Title)

	regionHTML, _ := region.Html()
	article.Source = e.sources.Infer(regionHTML)

	article.Body = cmp.Or(readableText(data, pageURL), text.Clean(region.Text()))

	return article, nil
}

func mainRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range MainSelectors {
		if region := doc.Find(selector).First(); region.Length() > 0 {
			return region
		}
	}
	return doc.Find("body").First()
}

// readableText runs readability over the page and returns the plain text of the result.
func readableText(data []byte, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}

	article, err := readability.FromReader(bytes.NewReader(data), base)
	if err != nil || article.Content == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return ""
	}
	return text.Clean(doc.Text())
}
