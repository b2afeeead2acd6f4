package filters

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

// DefaultPageSize is the fixed page size sent with every list query.
const DefaultPageSize = 50

// State is the fetch state of a pipeline.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateError    State = "error"
)

// Query is one server query derived from the applied set.
type Query struct {
	// Filters holds only the server-evaluable part of the applied set.
	Filters  Set
	Page     int
	PageSize int
}

// Values encodes the query as URL parameters.
func (q Query) Values() url.Values {
	return q.Filters.Query(q.Page, q.PageSize)
}

// PageResult is the result of one server query.
type PageResult[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	PageSize int `json:"pageSize"`
}

// TotalPages returns max(1, ceil(total/pageSize)).
func (r *PageResult[T]) TotalPages() int {
	return gateway.TotalPages(r.Total, r.PageSize)
}

// Fetcher runs a server query.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, q Query) (*PageResult[T], error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, q Query) (*PageResult[T], error)

// Fetch calls f.
func (f FetcherFunc[T]) Fetch(ctx context.Context, q Query) (*PageResult[T], error) {
	return f(ctx, q)
}

// RefineFunc applies the client-only filters to a fetched page. It must
// return a new slice and leave items untouched.
type RefineFunc[T any] func(items []T, client Set) []T

// Config holds the configuration for a pipeline.
type Config[T any] struct {
	Fetcher  Fetcher[T]
	Refine   RefineFunc[T]
	PageSize int
	Logger   *zerolog.Logger
}

// View is a consistent snapshot of a pipeline.
type View[T any] struct {
	Staged     Set            `json:"staged"`
	Applied    Set            `json:"applied"`
	Gates      Gates          `json:"gates"`
	Chips      []Entry        `json:"chips"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	State      State          `json:"state"`
	Err        error          `json:"-"`
	Result     *PageResult[T] `json:"result,omitempty"`
	Visible    []T            `json:"visible"`
}

// Pipeline is the filter pipeline of one list view. It is safe for
// concurrent use; network calls run outside its lock.
type Pipeline[T any] struct {
	fetcher  Fetcher[T]
	refine   RefineFunc[T]
	pageSize int
	logger   zerolog.Logger

	mu         sync.Mutex
	staged     Set
	applied    Set
	page       int
	totalPages int
	result     *PageResult[T]
	state      State
	lastErr    error
	generation uint64
	cancel     context.CancelFunc
}

// NewPipeline creates a new pipeline with empty filter sets on page 1.
func NewPipeline[T any](cfg *Config[T]) (*Pipeline[T], error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	refine := cfg.Refine
	if refine == nil {
		refine = func(items []T, _ Set) []T {
			return append([]T(nil), items...)
		}
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Pipeline[T]{
		fetcher:    cfg.Fetcher,
		refine:     refine,
		pageSize:   pageSize,
		logger:     logger,
		page:       1,
		totalPages: 1,
		state:      StateIdle,
	}, nil
}

// Stage edits the staged set and returns the re-evaluated gates. It never
// touches the applied set, the page or the network.
func (p *Pipeline[T]) Stage(k Key, value string) Gates {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.staged = p.staged.With(k, value)
	return p.staged.Gates()
}

// StageSet replaces the whole staged set.
func (p *Pipeline[T]) StageSet(s Set) Gates {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.staged = s
	return p.staged.Gates()
}

// Apply promotes the staged set to the applied set, resets the page to 1
// and fetches. When a gate fails nothing changes and the failing constraint
// is returned.
func (p *Pipeline[T]) Apply(ctx context.Context) error {
	p.mu.Lock()
	applied, err := Promote(p.staged)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.applied = applied
	p.page = 1
	plan := p.beginLocked(ctx)
	p.mu.Unlock()

	return p.run(ctx, plan)
}

// Clear empties both sets, resets the page to 1 and fetches.
func (p *Pipeline[T]) Clear(ctx context.Context) error {
	p.mu.Lock()
	p.staged = Set{}
	p.applied = Set{}
	p.page = 1
	plan := p.beginLocked(ctx)
	p.mu.Unlock()

	return p.run(ctx, plan)
}

// RemoveOne clears k from both sets. The page is reset and a fetch issued
// only if the applied set changed.
func (p *Pipeline[T]) RemoveOne(ctx context.Context, k Key) error {
	p.mu.Lock()
	p.staged = p.staged.Without(k)
	applied := p.applied.Without(k)
	if applied == p.applied {
		p.mu.Unlock()
		return nil
	}
	p.applied = applied
	p.page = 1
	plan := p.beginLocked(ctx)
	p.mu.Unlock()

	return p.run(ctx, plan)
}

// SetPage moves to page n, clamped to [1, totalPages], and fetches if the
// page changed.
func (p *Pipeline[T]) SetPage(ctx context.Context, n int) error {
	p.mu.Lock()
	if n < 1 {
		n = 1
	}
	if n > p.totalPages {
		n = p.totalPages
	}
	if n == p.page {
		p.mu.Unlock()
		return nil
	}
	p.page = n
	plan := p.beginLocked(ctx)
	p.mu.Unlock()

	return p.run(ctx, plan)
}

// Reload re-runs the current query. It is the retry affordance after a
// failed fetch and the initial load of a view.
func (p *Pipeline[T]) Reload(ctx context.Context) error {
	p.mu.Lock()
	plan := p.beginLocked(ctx)
	p.mu.Unlock()

	return p.run(ctx, plan)
}

// Cancel abandons any in-flight fetch and discards its result.
func (p *Pipeline[T]) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.generation++
	if p.state == StateFetching {
		p.state = StateIdle
	}
}

// Restore installs a previously applied set and page without fetching.
// The staged set mirrors the applied one.
func (p *Pipeline[T]) Restore(applied Set, page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if page < 1 {
		page = 1
	}
	p.staged = applied
	p.applied = applied
	p.page = page
	if p.totalPages < page {
		p.totalPages = page
	}
}

// Snapshot returns a consistent view of the pipeline, including the page
// refined by the client-only filters.
func (p *Pipeline[T]) Snapshot() View[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := View[T]{
		Staged:     p.staged,
		Applied:    p.applied,
		Gates:      p.staged.Gates(),
		Chips:      p.applied.Active(),
		Page:       p.page,
		TotalPages: p.totalPages,
		State:      p.state,
		Err:        p.lastErr,
		Result:     p.result,
		Visible:    []T{},
	}
	if p.result != nil {
		v.Visible = p.refine(p.result.Items, p.applied.Client())
	}
	return v
}

type fetchPlan struct {
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc
	query      Query
}

// beginLocked supersedes any in-flight fetch and captures the query for the
// current applied set and page. p.mu must be held.
func (p *Pipeline[T]) beginLocked(parent context.Context) fetchPlan {
	if p.cancel != nil {
		p.cancel()
	}
	p.generation++
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.state = StateFetching

	return fetchPlan{
		generation: p.generation,
		ctx:        ctx,
		cancel:     cancel,
		query: Query{
			Filters:  p.applied.Server(),
			Page:     p.page,
			PageSize: p.pageSize,
		},
	}
}

// run executes plan and installs its result unless a newer fetch started
// in the meantime. A result whose page is past the new last page is not
// installed; the clamped page is fetched once instead.
func (p *Pipeline[T]) run(parent context.Context, plan fetchPlan) error {
	clamped := false
	for {
		result, err := p.fetcher.Fetch(plan.ctx, plan.query)

		p.mu.Lock()
		if plan.generation != p.generation {
			p.mu.Unlock()
			plan.cancel()
			p.logger.Debug().Int("page", plan.query.Page).Msg("discarding superseded page")
			return nil
		}

		if err != nil {
			p.state = StateError
			p.lastErr = err
			p.cancel = nil
			p.mu.Unlock()
			plan.cancel()

			if errors.IsExpectedUnauthenticated(err) {
				p.logger.Debug().Msg("list fetch skipped: not signed in")
			} else {
				p.logger.Warn().Err(err).Int("page", plan.query.Page).Msg("list fetch failed")
			}
			return err
		}

		if result == nil {
			result = &PageResult[T]{}
		}
		if result.PageSize <= 0 {
			result.PageSize = plan.query.PageSize
		}
		p.totalPages = result.TotalPages()

		if p.page > p.totalPages {
			p.page = p.totalPages
			if !clamped {
				clamped = true
				plan.cancel()
				plan = p.beginLocked(parent)
				p.mu.Unlock()
				continue
			}
		}

		p.result = result
		p.state = StateIdle
		p.lastErr = nil
		p.cancel = nil
		p.mu.Unlock()
		plan.cancel()
		return nil
	}
}
