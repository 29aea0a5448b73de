package extract

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FeedEntry is one syndication item; missing sub-fields are empty strings.
// Date is Published read as an ISO calendar date.
type FeedEntry struct {
	Title       string
	Link        string
	Published   string
	Date        string
	Description string
}

func (e *Extractor) Feed(data []byte) ([]FeedEntry, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		published := cmp.Or(item.Published, item.Updated)
		entries = append(entries, FeedEntry{
			Title:       item.Title,
			Link:        item.Link,
			Published:   published,
			Date:        e.dates.Parse(published),
			Description: cmp.Or(item.Description, item.Content),
		})
	}

	return entries, nil
}

// LooksLikeFeed sniffs the start of a document for RSS or Atom markup.
func LooksLikeFeed(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.ToLower(bytes.TrimSpace(head))
	return bytes.Contains(head, []byte("<rss")) ||
		bytes.Contains(head, []byte("<feed")) ||
		bytes.Contains(head, []byte("<rdf:rdf"))
}
