package rumors

import (
	"context"
	"fmt"
	"log/slog"
)

type State int

const (
	StateNotStarted State = iota
	StateTrying
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateTrying:
		return "trying_strategy"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Orchestrator runs strategies in priority order and keeps the first non-empty result.
// Running out of strategies is an empty result, not an error.
type Orchestrator struct {
	strategies []Strategy
}

func NewOrchestrator(strategies ...Strategy) *Orchestrator {
	return &Orchestrator{strategies: strategies}
}

func (o *Orchestrator) Names() []string {
	names := make([]string, 0, len(o.strategies))
	for _, s := range o.strategies {
		names = append(names, s.Name())
	}
	return names
}

func (o *Orchestrator) Run(ctx context.Context, subject Subject, t *Trace) []Item {
	slog.Debug("Orchestrator state", "subject", subject.Name, "state", StateNotStarted)

	for i, strategy := range o.strategies {
		slog.Debug("Orchestrator state", "subject", subject.Name, "state", StateTrying, "index", i, "strategy", strategy.Name())
		t.Note("tried", strategy.Name())

		items, err := o.try(ctx, strategy, subject, t)
		if err != nil {
			slog.Warn("Strategy failed", "subject", subject.Name, "strategy", strategy.Name(), "error", err)
			t.Note("errors", strategy.Name()+": "+err.Error())
			continue
		}
		if len(items) == 0 {
			slog.Debug("Strategy returned no items", "subject", subject.Name, "strategy", strategy.Name())
			continue
		}

		slog.Debug("Orchestrator state", "subject", subject.Name, "state", StateDone, "strategy", strategy.Name(), "items", len(items))
		t.Note("strategy", strategy.Name())
		return items
	}

	slog.Debug("Orchestrator state", "subject", subject.Name, "state", StateDone, "items", 0)
	return nil
}

// try isolates one strategy: a panic becomes an error and the strategy's trace is
// merged under its name either way.
func (o *Orchestrator) try(ctx context.Context, strategy Strategy, subject Subject, t *Trace) (items []Item, err error) {
	scoped := t.Child()
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("strategy panicked: %v", r)
		}
		t.Merge(strategy.Name(), scoped)
	}()

	return strategy.Collect(ctx, subject, scoped)
}
