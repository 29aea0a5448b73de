package rumors

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/rumor-comb/app/extract"
	"github.com/lysyi3m/rumor-comb/app/fetch"
	"github.com/lysyi3m/rumor-comb/app/matcher"
)

// Hydrator is the single article step every hydrating strategy goes through:
// fetch the page, extract it, re-match the full text, convert to an Item.
type Hydrator struct {
	fetcher       fetch.Fetcher
	extractor     *extract.Extractor
	maxCandidates int
	maxResults    int
}

func NewHydrator(fetcher fetch.Fetcher, extractor *extract.Extractor, maxCandidates, maxResults int) *Hydrator {
	return &Hydrator{
		fetcher:       fetcher,
		extractor:     extractor,
		maxCandidates: maxCandidates,
		maxResults:    maxResults,
	}
}

func (h *Hydrator) article(ctx context.Context, link string) (extract.Article, error) {
	data, err := fetch.Get(ctx, h.fetcher, link, nil)
	if err != nil {
		return extract.Article{}, fmt.Errorf("failed to fetch article %s: %w", link, err)
	}

	article, err := h.extractor.Article(data, link)
	if err != nil {
		return extract.Article{}, fmt.Errorf("failed to parse article %s: %w", link, err)
	}

	return article, nil
}

// collect hydrates links in order until maxResults items are accepted or
// maxCandidates links were tried. A failing article is skipped. dates holds
// listing dates by link, used when the article page carries none.
func (h *Hydrator) collect(ctx context.Context, links []string, dates map[string]string, match matcher.Predicate, t *Trace) []Item {
	var items []Item

	for i, link := range links {
		if i >= h.maxCandidates || len(items) >= h.maxResults {
			break
		}
		if ctx.Err() != nil {
			break
		}

		t.Add("hydrate_attempts", 1)
		article, err := h.article(ctx, link)
		if err != nil {
			slog.Debug("Skipping article", "url", link, "error", err)
			t.Add("hydrate_failures", 1)
			t.Note("failed", link)
			continue
		}

		if article.Date == "" {
			if article.Date = dates[link]; article.Date == "" {
				t.Add("undated", 1)
				continue
			}
			article.DateRule = "listing"
		}
		if !match(article.Title + " " + article.Snippet + " " + article.Body) {
			t.Add("rejected", 1)
			t.Note("rejected", link)
			continue
		}

		t.Note("accepted", link)
		t.Note("date_rule", article.DateRule)
		items = append(items, itemFromArticle(article))
	}

	return items
}

func itemFromArticle(article extract.Article) Item {
	return Item{
		Title:   cmp.Or(article.Title, PlaceholderTitle),
		URL:     article.URL,
		Date:    article.Date,
		Source:  article.Source,
		Snippet: article.Snippet,
	}
}
