package extract

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/rumor-comb/app/text"
)

func newTestExtractor() *Extractor {
	return NewExtractor(text.NewDateParser(text.DefaultMonths), text.NewSourceInferrer("HoopsHype"))
}

func TestFirstMatch(t *testing.T) {
	doc, err := parseHTML([]byte(`<html><head><title>Doc</title></head><body><h1>  </h1><h2>Second  level</h2></body></html>`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	value, rule := FirstMatch(doc.Selection, []Rule{
		{Name: "h1", Selector: "h1"},
		{Name: "h2", Selector: "h2"},
		{Name: "title", Selector: "title"},
	})
	if value != "Second level" {
		t.Errorf("Expected 'Second level', got '%s'", value)
	}
	if rule != "h2" {
		t.Errorf("Expected rule 'h2', got '%s'", rule)
	}

	value, rule = FirstMatch(doc.Selection, []Rule{{Name: "missing", Selector: "time", Attr: "datetime"}})
	if value != "" || rule != "" {
		t.Errorf("Expected no match, got '%s' from '%s'", value, rule)
	}
}

func TestRuleApplyReadsAttribute(t *testing.T) {
	doc, _ := goquery.NewDocumentFromReader(stringsReader(`<time datetime="">x</time><time datetime="2025-10-10">y</time>`))

	value, ok := Rule{Selector: "time", Attr: "datetime"}.Apply(doc.Selection)
	if !ok {
		t.Fatal("Expected rule to match")
	}
	if value != "2025-10-10" {
		t.Errorf("Expected '2025-10-10', got '%s'", value)
	}
}

func TestResolveURL(t *testing.T) {
	base := parseBase("https://hoopshype.com/rumors/page/2/")

	tests := []struct {
		href string
		want string
	}{
		{"/rumors/brunson/", "https://hoopshype.com/rumors/brunson/"},
		{"brunson/", "https://hoopshype.com/rumors/page/2/brunson/"},
		{"https://www.espn.com/story#comments", "https://www.espn.com/story"},
		{"#top", ""},
		{"mailto:tips@hoopshype.com", ""},
		{"javascript:void(0)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resolveURL(base, tt.href); got != tt.want {
			t.Errorf("resolveURL(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	if NormalizeURL("https://HoopsHype.com/rumors/") != NormalizeURL("http://hoopshype.com/rumors") {
		t.Error("Expected scheme, case and trailing slash to be ignored")
	}
	if NormalizeURL("https://hoopshype.com/?s=a") == NormalizeURL("https://hoopshype.com/?s=b") {
		t.Error("Expected query to be significant")
	}
}
