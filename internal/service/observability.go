package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/horizon/internal/timing"
)

// UseCaseEvent describes one finished service call over the milestone set.
// Count fields stay zero when the call did not get far enough to know them.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error

	Milestones int
	Parents    int

	// Filled by evaluate only.
	TotalNPV   float64
	Cycles     int
	IssueKinds map[timing.IssueKind]int
}

// Failed reports whether the call returned an error.
func (e UseCaseEvent) Failed() bool { return e.Err != nil }

// Issues is the total number of data-quality issues found.
func (e UseCaseEvent) Issues() int {
	n := 0
	for _, c := range e.IssueKinds {
		n += c
	}
	return n
}

// UseCaseObserver receives an event after every observed service call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver drops every event.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs events as text lines to w. A nil writer gives a
// noop observer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// NewSlogUseCaseObserver logs events through an existing logger.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogUseCaseObserver{logger: logger}
}

func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("op", event.Name),
		slog.Int64("took_ms", event.Duration.Milliseconds()),
	}
	if event.Failed() {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		o.logger.LogAttrs(ctx, slog.LevelError, "milestone operation failed", attrs...)
		return
	}

	attrs = append(attrs, slog.Int("milestones", event.Milestones))
	if event.Parents > 0 {
		attrs = append(attrs, slog.Int("parents", event.Parents))
	}
	if event.Name == opEvaluate {
		attrs = append(attrs,
			slog.Float64("total_npv", event.TotalNPV),
			slog.Int("cycles", event.Cycles),
		)
		if kinds := issueKindAttrs(event.IssueKinds); len(kinds) > 0 {
			attrs = append(attrs, slog.Attr{Key: "issues", Value: slog.GroupValue(kinds...)})
		}
	}
	o.logger.LogAttrs(ctx, slog.LevelInfo, summaryMessage(event.Name), attrs...)
}

const (
	opEvaluate = "evaluate"
	opImport   = "import"
)

func summaryMessage(op string) string {
	switch op {
	case opEvaluate:
		return "milestones valued"
	case opImport:
		return "milestones imported"
	default:
		return "milestone operation done"
	}
}

// issueKindAttrs renders per-kind counts in a stable order.
func issueKindAttrs(kinds map[timing.IssueKind]int) []slog.Attr {
	keys := make([]string, 0, len(kinds))
	for k, n := range kinds {
		if n > 0 {
			keys = append(keys, string(k))
		}
	}
	sort.Strings(keys)
	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Int(k, kinds[timing.IssueKind(k)]))
	}
	return out
}

// countIssueKinds tallies issues by kind.
func countIssueKinds(issues []timing.Issue) map[timing.IssueKind]int {
	out := make(map[timing.IssueKind]int, len(issues))
	for _, is := range issues {
		out[is.Kind]++
	}
	return out
}

// observe finishes event with its timing and err and hands it to obs.
func observe(ctx context.Context, obs UseCaseObserver, event *UseCaseEvent, startedAt time.Time, err error) {
	event.StartedAt = startedAt
	event.Duration = time.Since(startedAt)
	event.Err = err
	obs.ObserveUseCase(ctx, *event)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
