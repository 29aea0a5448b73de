package rumors

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lysyi3m/rumor-comb/app/extract"
	"github.com/lysyi3m/rumor-comb/app/fetch"
	"github.com/lysyi3m/rumor-comb/app/text"
)

// Strategy is one way of acquiring items for a subject. An error means the
// strategy produced nothing; the orchestrator moves on.
type Strategy interface {
	Name() string
	Collect(ctx context.Context, subject Subject, t *Trace) ([]Item, error)
}

func expandURL(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// FeedStrategy reads the rumor category feed.
type FeedStrategy struct {
	feedURL   string
	fetcher   fetch.Fetcher
	extractor *extract.Extractor
	hydrator  *Hydrator
}

func NewFeedStrategy(feedURL string, fetcher fetch.Fetcher, extractor *extract.Extractor, h *Hydrator) *FeedStrategy {
	return &FeedStrategy{
		feedURL:   feedURL,
		fetcher:   fetcher,
		extractor: extractor,
		hydrator:  h,
	}
}

func (s *FeedStrategy) Name() string { return "feed" }

func (s *FeedStrategy) Collect(ctx context.Context, subject Subject, t *Trace) ([]Item, error) {
	data, err := fetch.Get(ctx, s.fetcher, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	entries, err := s.extractor.Feed(data)
	if err != nil {
		return nil, err
	}
	t.Add("entries", len(entries))

	// Cheap pre-filter on the feed's own text; the article body is matched again.
	var links []string
	dates := make(map[string]string)
	for _, entry := range entries {
		if entry.Link == "" || !subject.Match(entry.Title+" "+text.StripTags(entry.Description)) {
			continue
		}
		links = append(links, entry.Link)
		dates[entry.Link] = entry.Date
	}
	t.Add("candidates", len(links))

	return s.hydrator.collect(ctx, links, dates, subject.Match, t), nil
}

// SearchStrategy queries the site search, which answers with a feed or a page.
type SearchStrategy struct {
	searchURL string
	filter    extract.LinkFilter
	fetcher   fetch.Fetcher
	extractor *extract.Extractor
	hydrator  *Hydrator
}

func NewSearchStrategy(searchURL string, filter extract.LinkFilter, fetcher fetch.Fetcher, extractor *extract.Extractor, h *Hydrator) *SearchStrategy {
	return &SearchStrategy{
		searchURL: searchURL,
		filter:    filter,
		fetcher:   fetcher,
		extractor: extractor,
		hydrator:  h,
	}
}

func (s *SearchStrategy) Name() string { return "search" }

func (s *SearchStrategy) Collect(ctx context.Context, subject Subject, t *Trace) ([]Item, error) {
	pageURL := expandURL(s.searchURL, map[string]string{"query": url.QueryEscape(subject.Name)})

	data, err := fetch.Get(ctx, s.fetcher, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search results: %w", err)
	}

	var links []string
	dates := make(map[string]string)
	if extract.LooksLikeFeed(data) {
		entries, err := s.extractor.Feed(data)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Link != "" && s.filter.Accept(entry.Link) {
				links = append(links, entry.Link)
				dates[entry.Link] = entry.Date
			}
		}
		t.Note("format", "feed")
	} else {
		var rule string
		links, rule = s.extractor.Links(data, pageURL, extract.DefaultLinkRules, s.filter)
		t.Note("format", "html")
		t.Note("link_rule", rule)
	}
	t.Add("candidates", len(links))

	return s.hydrator.collect(ctx, links, dates, subject.Match, t), nil
}

// IndexStrategy crawls the first pages of the rumor index. Index pages mix all
// subjects, so links are collected unfiltered and matched after hydration.
type IndexStrategy struct {
	indexURL  string
	pages     int
	filter    extract.LinkFilter
	fetcher   fetch.Fetcher
	extractor *extract.Extractor
	hydrator  *Hydrator
}

func NewIndexStrategy(indexURL string, pages int, filter extract.LinkFilter, fetcher fetch.Fetcher, extractor *extract.Extractor, h *Hydrator) *IndexStrategy {
	return &IndexStrategy{
		indexURL:  indexURL,
		pages:     pages,
		filter:    filter,
		fetcher:   fetcher,
		extractor: extractor,
		hydrator:  h,
	}
}

func (s *IndexStrategy) Name() string { return "index" }

func (s *IndexStrategy) Collect(ctx context.Context, subject Subject, t *Trace) ([]Item, error) {
	seen := make(map[string]bool)
	var links []string
	failed := 0

	for page := 1; page <= s.pages; page++ {
		pageURL := expandURL(s.indexURL, map[string]string{"page": strconv.Itoa(page)})

		data, err := fetch.Get(ctx, s.fetcher, pageURL, nil)
		if err != nil {
			slog.Debug("Skipping index page", "url", pageURL, "error", err)
			t.Add("page_failures", 1)
			failed++
			continue
		}
		t.Add("pages", 1)

		pageLinks, _ := s.extractor.Links(data, pageURL, extract.DefaultLinkRules, s.filter)
		for _, link := range pageLinks {
			key := extract.NormalizeURL(link)
			if seen[key] {
				continue
			}
			seen[key] = true
			links = append(links, link)
		}
	}

	if s.pages > 0 && failed == s.pages {
		return nil, fmt.Errorf("failed to fetch any of %d index pages", s.pages)
	}
	t.Add("candidates", len(links))

	return s.hydrator.collect(ctx, links, nil, subject.Match, t), nil
}

// TagStrategy reads the subject's own tag stream on the authenticated preview
// site. Stream pages carry dated blocks, so nothing is hydrated.
type TagStrategy struct {
	tagURL       string
	pages        int
	auth         string
	snippetLinks bool
	fetcher      fetch.Fetcher
	extractor    *extract.Extractor
}

func NewTagStrategy(tagURL string, pages int, user, pass string, snippetLinks bool, fetcher fetch.Fetcher, extractor *extract.Extractor) *TagStrategy {
	return &TagStrategy{
		tagURL:       tagURL,
		pages:        pages,
		auth:         fetch.BasicAuth(user, pass),
		snippetLinks: snippetLinks,
		fetcher:      fetcher,
		extractor:    extractor,
	}
}

func (s *TagStrategy) Name() string { return "tag" }

func (s *TagStrategy) Collect(ctx context.Context, subject Subject, t *Trace) ([]Item, error) {
	if subject.Slug == "" {
		return nil, nil
	}
	headers := map[string]string{"Authorization": s.auth}

	var items []Item
	for page := 1; page <= s.pages; page++ {
		pageURL := expandURL(s.tagURL, map[string]string{
			"slug": subject.Slug,
			"page": strconv.Itoa(page),
		})

		data, err := fetch.Get(ctx, s.fetcher, pageURL, headers)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("failed to fetch tag stream: %w", err)
			}
			slog.Debug("Tag stream ended", "url", pageURL, "error", err)
			break
		}

		blocks := s.extractor.Blocks(data, pageURL)
		if len(blocks) == 0 {
			break
		}
		t.Add("pages", 1)
		t.Add("blocks", len(blocks))

		for _, block := range blocks {
			items = append(items, s.item(block))
		}
	}

	return items, nil
}

func (s *TagStrategy) item(block extract.Block) Item {
	snippet := block.Text
	if s.snippetLinks && block.HTML != "" {
		snippet = block.HTML
	}
	title := block.Title
	if title == "" {
		title = PlaceholderTitle
	}
	return Item{
		Title:   title,
		URL:     block.URL,
		Date:    block.Date,
		Source:  block.Source,
		Snippet: snippet,
	}
}
