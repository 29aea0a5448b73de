package rumors

import (
	"cmp"
	"context"
	"strings"

	"github.com/lysyi3m/rumor-comb/app/cfg"
	"github.com/lysyi3m/rumor-comb/app/fetch"
	"github.com/lysyi3m/rumor-comb/app/matcher"
)

type fakeResponse struct {
	status int
	body   string
}

// fakeFetcher serves canned bodies by URL; unknown URLs answer 404.
type fakeFetcher struct {
	responses map[string]fakeResponse
	calls     []string
	headers   []map[string]string
}

func newFakeFetcher(responses map[string]fakeResponse) *fakeFetcher {
	return &fakeFetcher{responses: responses}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, headers map[string]string) (*fetch.Response, error) {
	f.calls = append(f.calls, url)
	f.headers = append(f.headers, headers)

	r, ok := f.responses[url]
	if !ok {
		return &fetch.Response{Status: 404, URL: url}, nil
	}
	return &fetch.Response{Status: cmp.Or(r.status, 200), Body: []byte(r.body), URL: url}, nil
}

func (f *fakeFetcher) called(prefix string) bool {
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func testCfg() *cfg.Cfg {
	return &cfg.Cfg{
		SiteURL:       "https://site.test",
		FeedURL:       "https://site.test/rumors/feed/",
		SearchURL:     "https://site.test/?s={query}",
		IndexURL:      "https://site.test/rumors/page/{page}/",
		TagURL:        "https://preview.test/rumors/tag/{slug}/page/{page}/",
		LinkMarker:    "/rumors/",
		PreviewUser:   "user",
		PreviewPass:   "pass",
		DefaultSource: "HoopsHype",
		MaxCandidates: 12,
		IndexPages:    3,
		TagPages:      10,
		MaxItems:      5,
		Window:        WindowTop,
		MultiMaxItems: 8,
		MultiWindow:   WindowSkipNewest,
	}
}

func mustAliases() matcher.Aliases {
	aliases, err := matcher.DefaultAliases()
	if err != nil {
		panic(err)
	}
	return aliases
}

func newTestService(f *fakeFetcher) *Service {
	svc, err := NewService(testCfg(), f, mustAliases())
	if err != nil {
		panic(err)
	}
	return svc
}

func articlePage(title, date, body string) string {
	var timeTag string
	if date != "" {
		timeTag = `<time datetime="` + date + `T10:00:00+00:00">` + date + `</time>`
	}
	return `<!DOCTYPE html><html><head><title>` + title + ` | Site</title></head><body>
<article>
	<h1 class="entry-title">` + title + `</h1>
	` + timeTag + `
	<div class="entry-content"><p>` + body + `</p></div>
</article>
<footer><p>Copyright Site</p></footer>
</body></html>`
}

func rssFeed(items ...[3]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Rumors</title>`)
	for _, item := range items {
		b.WriteString(`<item><title>` + item[0] + `</title><link>` + item[1] + `</link><description>` + item[2] + `</description></item>`)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func linkPage(hrefs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><main>`)
	for _, href := range hrefs {
		b.WriteString(`<h2 class="entry-title"><a href="` + href + `">Rumor</a></h2>`)
	}
	b.WriteString(`</main></body></html>`)
	return b.String()
}

// brunsonSite is a site whose feed only offers an article that does not mention
// Brunson, while the search finds two that do.
func brunsonSite() map[string]fakeResponse {
	return map[string]fakeResponse{
		"https://site.test/rumors/feed/": {body: rssFeed(
			[3]string{"Brunson and Knicks at media day", "https://site.test/rumors/media-day/", "Notes from media day."},
		)},
		"https://site.test/rumors/media-day/": {body: articlePage(
			"Knicks media day notes", "2025-10-09",
			"Mikal Bridges and Josh Hart spoke about the upcoming season in New York.",
		)},
		"https://site.test/?s=Jalen+Brunson": {body: linkPage(
			"/rumors/brunson-extension/",
			"/rumors/lakers-guards/",
			"https://site.test/rumors/brunson-trade/",
			"https://site.test/rumors/",
		)},
		"https://site.test/rumors/brunson-extension/": {body: articlePage(
			"Knicks open extension talks", "2025-10-10",
			"Jalen Brunson and the Knicks have opened talks on a long-term extension, via ESPN.",
		)},
		"https://site.test/rumors/lakers-guards/": {body: articlePage(
			"Lakers scouting guards", "2025-10-11",
			"The Lakers are looking for another ball handler before the deadline.",
		)},
		"https://site.test/rumors/brunson-trade/": {body: articlePage(
			"Rival teams keep calling", "2025-10-12",
			"Rival executives keep asking whether Brunson could ever become available.",
		)},
	}
}

func tagPage(blocks ...[3]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="rumors-list">`)
	for _, block := range blocks {
		b.WriteString(`<h3>` + block[0] + `</h3><p><strong>` + block[1] + `</strong> ` + block[2] + `</p>`)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}
