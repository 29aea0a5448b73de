package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/rumor-comb/app/cfg"
	"github.com/lysyi3m/rumor-comb/app/fetch"
	"github.com/lysyi3m/rumor-comb/app/matcher"
	"github.com/lysyi3m/rumor-comb/app/rumors"
)

func mustAliases() matcher.Aliases {
	aliases, err := matcher.DefaultAliases()
	if err != nil {
		panic(err)
	}
	return aliases
}

type countingFetcher struct {
	calls int
}

func (f *countingFetcher) Fetch(_ context.Context, url string, _ map[string]string) (*fetch.Response, error) {
	f.calls++
	return &fetch.Response{Status: http.StatusNotFound, URL: url}, nil
}

func newTestRouter(t *testing.T, looker Looker, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewServer(NewHandler(looker, "test", "https://hoopshype.com"), apiKey)
}

func get(r http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetRumorsMissingQ(t *testing.T) {
	c := &cfg.Cfg{
		SiteURL:       "https://site.test",
		FeedURL:       "https://site.test/rumors/feed/",
		SearchURL:     "https://site.test/?s={query}",
		IndexURL:      "https://site.test/rumors/page/{page}/",
		TagURL:        "https://preview.test/rumors/tag/{slug}/page/{page}/",
		LinkMarker:    "/rumors/",
		DefaultSource: "HoopsHype",
		MaxCandidates: 12,
		IndexPages:    3,
		TagPages:      10,
		MaxItems:      5,
		Window:        rumors.WindowTop,
		MultiMaxItems: 8,
		MultiWindow:   rumors.WindowSkipNewest,
	}
	fetcher := &countingFetcher{}
	svc, err := rumors.NewService(c, fetcher, mustAliases())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	r := newTestRouter(t, svc, "")

	w := get(r, "/rumors", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"Missing q"}` {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
	if fetcher.calls != 0 {
		t.Errorf("Expected no network calls, got %d", fetcher.calls)
	}
}

func TestGetRumorsSuccess(t *testing.T) {
	looker := &stubLooker{result: rumors.Result{
		Subject: "Lakers",
		Items:   []rumors.Item{{Title: "Lakers want a guard", URL: "https://x/1", Date: "2025-10-10", Source: "ESPN", Snippet: "The Lakers want a guard."}},
	}}
	r := newTestRouter(t, looker, "")

	w := get(r, "/rumors?q=Lakers&mode=team", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got error: %v", err)
	}
	if body["subject"] != "Lakers" {
		t.Errorf("Expected subject 'Lakers', got %v", body["subject"])
	}
	if _, ok := body["debug"]; ok {
		t.Error("Expected no debug key without the flag")
	}
	items := body["items"].([]any)
	item := items[0].(map[string]any)
	for _, key := range []string{"title", "url", "date", "source", "snippet"} {
		if _, ok := item[key]; !ok {
			t.Errorf("Expected item key %q", key)
		}
	}
	if w.Header().Get("X-Rumor-Items") != "1" {
		t.Errorf("Expected X-Rumor-Items 1, got %q", w.Header().Get("X-Rumor-Items"))
	}
	if looker.last.Mode != "team" {
		t.Errorf("Expected mode 'team', got '%s'", looker.last.Mode)
	}
}

func TestGetRumorsDebug(t *testing.T) {
	trace := rumors.NewTrace()
	trace.Add("returned", 0)
	r := newTestRouter(t, &stubLooker{result: rumors.Result{Subject: "Nobody", Trace: trace}}, "")

	w := get(r, "/rumors?q=Nobody&debug=true", nil)

	var body struct {
		Items []rumors.Item `json:"items"`
		Debug *rumors.Trace `json:"debug"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got error: %v", err)
	}
	if body.Items == nil {
		t.Error("Expected items to be an empty array, not null")
	}
	if body.Debug == nil {
		t.Fatal("Expected debug object")
	}
	if _, ok := body.Debug.Counters["returned"]; !ok {
		t.Errorf("Expected returned counter in debug, got %v", body.Debug.Counters)
	}
}

func TestAPIRumorsRequiresKey(t *testing.T) {
	looker := &stubLooker{result: rumors.Result{Subject: "Lakers"}}
	r := newTestRouter(t, looker, "secret")

	if w := get(r, "/api/rumors?q=Lakers", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without key, got %d", w.Code)
	}
	if w := get(r, "/api/rumors?q=Lakers", map[string]string{"X-API-Key": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with wrong key, got %d", w.Code)
	}
	if w := get(r, "/api/rumors?q=Lakers", map[string]string{"Authorization": "Bearer secret"}); w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with bearer key, got %d", w.Code)
	}
	if w := get(r, "/rumors?q=Lakers", nil); w.Code != http.StatusOK {
		t.Errorf("Expected public route to stay open, got %d", w.Code)
	}
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(t, &stubLooker{}, "")

	w := get(r, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got error: %v", err)
	}
	if body["version"] != "test" {
		t.Errorf("Expected version 'test', got %v", body["version"])
	}
	if strategies, ok := body["strategies"].([]any); !ok || len(strategies) != 4 {
		t.Errorf("Unexpected strategies: %v", body["strategies"])
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, &stubLooker{}, "")

	req := httptest.NewRequest(http.MethodOptions, "/rumors", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}

func TestGetRumorsFeed(t *testing.T) {
	looker := &stubLooker{result: rumors.Result{
		Subject: "Lakers",
		Items:   []rumors.Item{{Title: "Lakers want a guard", URL: "https://x/1", Date: "2025-10-10", Source: "ESPN"}},
	}}
	r := newTestRouter(t, looker, "")

	w := get(r, "/rumors.rss?q=Lakers&debug=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/rss+xml; charset=utf-8" {
		t.Errorf("Unexpected content type: %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "<title>Lakers want a guard</title>") {
		t.Errorf("Expected item in feed, got: %s", w.Body.String())
	}
	if looker.last.Debug {
		t.Error("Expected the feed route to ignore the debug flag")
	}

	if w := get(r, "/rumors.rss", nil); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without q, got %d", w.Code)
	}
}
