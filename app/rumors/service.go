package rumors

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lysyi3m/rumor-comb/app/cfg"
	"github.com/lysyi3m/rumor-comb/app/extract"
	"github.com/lysyi3m/rumor-comb/app/fetch"
	"github.com/lysyi3m/rumor-comb/app/matcher"
	"github.com/lysyi3m/rumor-comb/app/text"
)

// maxResults is how many items a hydrating strategy accepts before it stops.
const maxResults = 5

type Service struct {
	builder      *matcher.Builder
	orchestrator *Orchestrator
	tag          Strategy
	window       Window
	multiWindow  Window
}

// NewService wires the strategies for c around fetcher. Strategy order is
// feed, search, index, tag.
func NewService(c *cfg.Cfg, fetcher fetch.Fetcher, aliases matcher.Aliases) (*Service, error) {
	window, err := ParseWindow(c.Window, c.MaxItems)
	if err != nil {
		return nil, err
	}
	multiWindow, err := ParseWindow(c.MultiWindow, c.MultiMaxItems)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewExtractor(
		text.NewDateParser(text.DefaultMonths),
		text.NewSourceInferrer(c.DefaultSource),
	)
	hydrator := NewHydrator(fetcher, extractor, c.MaxCandidates, maxResults)

	filter := extract.LinkFilter{
		Marker:  c.LinkMarker,
		Skip:    extract.DefaultSkip,
		Exclude: []string{strings.TrimRight(c.SiteURL, "/") + c.LinkMarker},
	}

	tag := NewTagStrategy(c.TagURL, c.TagPages, c.PreviewUser, c.PreviewPass, c.SnippetLinks, fetcher, extractor)

	return &Service{
		builder: matcher.NewBuilder(aliases),
		orchestrator: NewOrchestrator(
			NewFeedStrategy(c.FeedURL, fetcher, extractor, hydrator),
			NewSearchStrategy(c.SearchURL, filter, fetcher, extractor, hydrator),
			NewIndexStrategy(c.IndexURL, c.IndexPages, filter, fetcher, extractor, hydrator),
			tag,
		),
		tag:         tag,
		window:      window,
		multiWindow: multiWindow,
	}, nil
}

// NewServiceFromCfg builds the production service: HTTP fetcher and the team alias
// table from c.TeamsFile, or the built-in one.
func NewServiceFromCfg(c *cfg.Cfg) (*Service, error) {
	aliases, err := matcher.DefaultAliases()
	if err != nil {
		return nil, fmt.Errorf("failed to load team aliases: %w", err)
	}
	if c.TeamsFile != "" {
		loaded, err := matcher.LoadAliases(c.TeamsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load team aliases: %w", err)
		}
		aliases = loaded
	}

	fetcher := fetch.NewHTTPFetcher(time.Duration(c.RequestTimeout)*time.Second, c.UserAgent, c.AcceptLanguage)

	return NewService(c, fetcher, aliases)
}

func (s *Service) Strategies() []string {
	return s.orchestrator.Names()
}

func (s *Service) subject(name string, mode matcher.Mode) Subject {
	return Subject{
		Name:  name,
		Mode:  mode,
		Slug:  text.Slugify(name),
		Match: s.builder.Build(name, mode),
	}
}

// Lookup runs one request. A single subject goes through every strategy; a comma
// separated list reads each subject's tag stream and merges them. The trace is
// only allocated when req.Debug is set and never influences the items.
func (s *Service) Lookup(ctx context.Context, req Request) (Result, error) {
	raw := text.Clean(req.Subject)
	names := SplitSubjects(raw)
	if len(names) == 0 {
		return Result{}, ErrMissingSubject
	}

	var t *Trace
	if req.Debug {
		t = NewTrace()
	}
	mode := matcher.ParseMode(req.Mode)

	var items []Item
	window := s.window

	if len(names) == 1 {
		items = s.orchestrator.Run(ctx, s.subject(names[0], mode), t)
	} else {
		window = s.multiWindow
		for _, name := range names {
			collected, err := s.orchestrator.try(ctx, s.tag, s.subject(name, mode), t)
			if err != nil {
				slog.Warn("Strategy failed", "subject", name, "strategy", s.tag.Name(), "error", err)
				t.Note("errors", name+": "+err.Error())
				continue
			}
			t.Add("subject."+text.Slugify(name), len(collected))
			items = append(items, collected...)
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{Subject: raw, Trace: t}, fmt.Errorf("lookup interrupted: %w", err)
	}

	t.Add("collected", len(items))
	selected := Select(items, window)
	t.Add("returned", len(selected))

	slog.Info("Lookup completed", "subject", raw, "mode", string(mode), "collected", len(items), "returned", len(selected))

	return Result{
		Subject: raw,
		Items:   selected,
		Trace:   t,
	}, nil
}
