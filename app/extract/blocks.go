package extract

import (
	"net/url"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/rumor-comb/app/text"
	"golang.org/x/net/html"
)

// BlockContainers are tried in order; the first one present is walked.
var BlockContainers = []string{".rumors-list", ".entry-content", "main", "body"}

const (
	maxDateLineRunes = 48
	minBlockRunes    = 15
	maxTitleRunes    = 140
)

// Block is one dated paragraph of a rumor stream page.
type Block struct {
	Date   string
	Title  string
	Text   string
	HTML   string
	URL    string
	Source string
}

// Blocks walks a stream page in document order. Short elements whose whole text is a date
// move the date cursor; p and li elements after it become blocks carrying that date.
func (e *Extractor) Blocks(data []byte, pageURL string) []Block {
	doc, err := parseHTML(data)
	if err != nil {
		return nil
	}
	base := parseBase(pageURL)

	container := doc.Selection
	for _, selector := range BlockContainers {
		if found := doc.Find(selector).First(); found.Length() > 0 {
			container = found
			break
		}
	}

	var (
		blocks   []Block
		current  string
		accepted = make(map[*html.Node]bool)
	)

	container.Find("*").Each(func(_ int, el *goquery.Selection) {
		node := el.Get(0)
		if insideAccepted(node, accepted) {
			return
		}

		cleaned := text.Clean(el.Text())
		if cleaned == "" {
			return
		}

		if utf8.RuneCountInString(cleaned) <= maxDateLineRunes {
			if date := e.dates.ParseHumanExact(cleaned); date != "" {
				current = date
				return
			}
		}

		if current == "" || (node.Data != "p" && node.Data != "li") {
			return
		}
		if utf8.RuneCountInString(cleaned) < minBlockRunes {
			return
		}

		accepted[node] = true
		blocks = append(blocks, e.block(el, current, cleaned, base))
	})

	return blocks
}

func (e *Extractor) block(el *goquery.Selection, date, cleaned string, base *url.URL) Block {
	b := Block{
		Date:  date,
		Text:  cleaned,
		HTML:  SanitizeLinks(el, base),
		Title: blockTitle(el, cleaned),
	}

	if anchor := el.Find("a").Last(); anchor.Length() > 0 {
		b.URL = resolveURL(base, anchor.AttrOr("href", ""))
		b.Source = e.sources.FromAnchor(anchor.Text())
	} else {
		markup, _ := el.Html()
		b.Source = e.sources.Infer(markup)
	}

	return b
}

func blockTitle(el *goquery.Selection, cleaned string) string {
	if strong := text.Clean(el.Find("strong, b").First().Text()); strong != "" {
		return strong
	}
	return text.Truncate(firstSentence(cleaned), maxTitleRunes)
}

func firstSentence(s string) string {
	for i, r := range s {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if next := i + 1; next == len(s) || s[next] == ' ' {
			return s[:next]
		}
	}
	return s
}

func insideAccepted(n *html.Node, accepted map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if accepted[p] {
			return true
		}
	}
	return false
}
