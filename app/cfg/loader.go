package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey   string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for /api endpoints (optional)"`
	UserAgent      string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; RumorComb/1.0)" description:"User agent string for HTTP requests"`
	AcceptLanguage string `long:"accept-language" env:"ACCEPT_LANGUAGE" default:"en-US,en;q=0.9" description:"Accept-Language header for HTTP requests"`
	RequestTimeout int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"15" description:"Per-request network timeout in seconds"`

	// Source site endpoints ({query}, {slug} and {page} are substituted per request)
	SiteURL    string `long:"site-url" env:"SITE_URL" default:"https://hoopshype.com" description:"Base URL of the rumor site"`
	FeedURL    string `long:"feed-url" env:"FEED_URL" default:"https://hoopshype.com/rumors/feed/" description:"Rumor category syndication feed"`
	SearchURL  string `long:"search-url" env:"SEARCH_URL" default:"https://hoopshype.com/?s={query}&post_type=rumor" description:"Site search URL template"`
	IndexURL   string `long:"index-url" env:"INDEX_URL" default:"https://hoopshype.com/rumors/page/{page}/" description:"Rumor index page URL template"`
	TagURL     string `long:"tag-url" env:"TAG_URL" default:"https://preview.hoopshype.com/rumors/tag/{slug}/page/{page}/" description:"Rumor tag stream URL template"`
	LinkMarker string `long:"link-marker" env:"LINK_MARKER" default:"/rumors/" description:"Path segment every rumor article URL contains"`

	// Preview credentials (the defaults are a non-production placeholder)
	PreviewUser string `long:"preview-user" env:"PREVIEW_USER" default:"preview" description:"Username for the authenticated tag stream"`
	PreviewPass string `long:"preview-pass" env:"PREVIEW_PASS" default:"preview" description:"Password for the authenticated tag stream"`

	// Extraction and selection
	DefaultSource string `long:"default-source" env:"DEFAULT_SOURCE" default:"HoopsHype" description:"Outlet label used when no attribution is found"`
	TeamsFile     string `long:"teams-file" env:"TEAMS_FILE" description:"YAML file overriding the built-in team alias table"`
	MaxCandidates int    `long:"max-candidates" env:"MAX_CANDIDATES" default:"12" description:"Articles hydrated per strategy at most"`
	IndexPages    int    `long:"index-pages" env:"INDEX_PAGES" default:"3" description:"Index pages crawled by the index strategy"`
	TagPages      int    `long:"tag-pages" env:"TAG_PAGES" default:"10" description:"Tag pages crawled by the tag strategy"`
	MaxItems      int    `long:"max-items" env:"MAX_ITEMS" default:"5" description:"Items returned for a single subject"`
	Window        string `long:"window" env:"WINDOW" default:"top" choice:"top" choice:"skip-newest" description:"Output window for a single subject"`
	MultiMaxItems int    `long:"multi-max-items" env:"MULTI_MAX_ITEMS" default:"8" description:"Items returned for a comma separated subject list"`
	MultiWindow   string `long:"multi-window" env:"MULTI_WINDOW" default:"skip-newest" choice:"top" choice:"skip-newest" description:"Output window for a comma separated subject list"`
	SnippetLinks  bool   `long:"snippet-links" env:"SNIPPET_LINKS" description:"Keep inline citation links in tag stream snippets"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses args instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:           raw.Port,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		AcceptLanguage: raw.AcceptLanguage,
		RequestTimeout: raw.RequestTimeout,
		SiteURL:        raw.SiteURL,
		FeedURL:        raw.FeedURL,
		SearchURL:      raw.SearchURL,
		IndexURL:       raw.IndexURL,
		TagURL:         raw.TagURL,
		LinkMarker:     raw.LinkMarker,
		PreviewUser:    raw.PreviewUser,
		PreviewPass:    raw.PreviewPass,
		DefaultSource:  raw.DefaultSource,
		TeamsFile:      raw.TeamsFile,
		MaxCandidates:  raw.MaxCandidates,
		IndexPages:     raw.IndexPages,
		TagPages:       raw.TagPages,
		MaxItems:       raw.MaxItems,
		Window:         raw.Window,
		MultiMaxItems:  raw.MultiMaxItems,
		MultiWindow:    raw.MultiWindow,
		SnippetLinks:   raw.SnippetLinks,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func validate(cfg *Cfg) error {
	nonNegativeFields := map[string]int{
		"request timeout": cfg.RequestTimeout,
		"max candidates":  cfg.MaxCandidates,
		"index pages":     cfg.IndexPages,
		"tag pages":       cfg.TagPages,
	}
	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	positiveFields := map[string]int{
		"max items":       cfg.MaxItems,
		"multi max items": cfg.MultiMaxItems,
	}
	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	return nil
}
