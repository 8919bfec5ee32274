// Package store holds the milestone list the rest of the engine reads.
//
// Loads may overlap. Each load takes the next sequence number and its result
// is applied only if no newer load was issued meanwhile; older results are
// dropped on arrival.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/horizon/internal/domain"
)

// ErrLoadTimeout is returned when a load's context expires or is cancelled
// before its source answers.
var ErrLoadTimeout = errors.New("milestone load timed out")

// Snapshot is the state of the store at one point in time.
type Snapshot struct {
	CurrentAge    int
	InflationRate float64
	Milestones    []*domain.Milestone
	Parents       []*domain.ParentMilestone
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{CurrentAge: s.CurrentAge, InflationRate: s.InflationRate}
	if s.Milestones != nil {
		out.Milestones = make([]*domain.Milestone, 0, len(s.Milestones))
		for _, m := range s.Milestones {
			out.Milestones = append(out.Milestones, m.Clone())
		}
	}
	if s.Parents != nil {
		out.Parents = make([]*domain.ParentMilestone, 0, len(s.Parents))
		for _, p := range s.Parents {
			if p == nil {
				continue
			}
			cp := *p
			out.Parents = append(out.Parents, &cp)
		}
	}
	return out
}

// Source supplies milestone data, for example a database or a JSON document.
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Snapshot, error)

func (f SourceFunc) Fetch(ctx context.Context) (*Snapshot, error) { return f(ctx) }

type Store struct {
	mu      sync.RWMutex
	issued  uint64
	applied uint64
	state   Snapshot
	logger  *slog.Logger
}

type Option func(*Store)

// WithLogger sets the logger used for discarded loads.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store holding the default profile values.
func New(opts ...Option) *Store {
	p := domain.DefaultProfile()
	s := &Store{
		state:  Snapshot{CurrentAge: p.CurrentAge, InflationRate: p.InflationRate},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches from src and applies the result if it is still the latest
// load. applied is false when a newer load superseded this one; such a load
// returns a nil error even if its fetch failed. A fetch error on the latest
// load leaves the store unchanged and is returned. Context expiry is always
// reported as ErrLoadTimeout.
func (s *Store) Load(ctx context.Context, src Source) (applied bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("load: %w: %w", ErrLoadTimeout, err)
	}
	seq := s.next()

	type result struct {
		snap *Snapshot
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		snap, err := src.Fetch(ctx)
		ch <- result{snap: snap, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("load %d: %w: %w", seq, ErrLoadTimeout, ctx.Err())
	case res = <-ch:
	}

	if res.err != nil && ctx.Err() != nil {
		return false, fmt.Errorf("load %d: %w: %w", seq, ErrLoadTimeout, ctx.Err())
	}
	// A failed answer to a superseded load is dropped like any stale one.
	if (res.err != nil || res.snap == nil) && s.stale(ctx, seq) {
		return false, nil
	}
	if res.err != nil {
		return false, fmt.Errorf("load %d: fetch milestones: %w", seq, res.err)
	}
	if res.snap == nil {
		return false, fmt.Errorf("load %d: source returned no data", seq)
	}

	return s.apply(ctx, seq, res.snap.Clone()), nil
}

// Replace installs snap directly, superseding any load in flight.
func (s *Store) Replace(snap Snapshot) {
	seq := s.next()
	s.apply(context.Background(), seq, snap.Clone())
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Seq returns the sequence number of the last applied load, 0 if none.
func (s *Store) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

func (s *Store) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *Store) stale(ctx context.Context, seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.discardIfStale(ctx, seq)
}

// discardIfStale must be called with mu held.
func (s *Store) discardIfStale(ctx context.Context, seq uint64) bool {
	if seq == s.issued {
		return false
	}
	s.logger.DebugContext(ctx, "stale milestone load discarded", "seq", seq, "latest", s.issued)
	return true
}

func (s *Store) apply(ctx context.Context, seq uint64, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discardIfStale(ctx, seq) {
		return false
	}
	s.state = snap
	s.applied = seq
	return true
}
