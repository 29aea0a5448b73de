package cfg

import "log/slog"

type Cfg struct {
	// HTTP server configuration
	Port           string
	APIAccessKey   string
	UserAgent      string
	AcceptLanguage string
	RequestTimeout int

	// Source site endpoints
	SiteURL    string
	FeedURL    string
	SearchURL  string
	IndexURL   string
	TagURL     string
	LinkMarker string

	// Preview credentials for the tag stream
	PreviewUser string
	PreviewPass string

	// Extraction and selection
	DefaultSource string
	TeamsFile     string
	MaxCandidates int
	IndexPages    int
	TagPages      int
	MaxItems      int
	Window        string
	MultiMaxItems int
	MultiWindow   string
	SnippetLinks  bool

	// Application metadata
	Debug   bool
	Version string
}

// LogLevel is the slog level the entry points install.
func (c *Cfg) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
