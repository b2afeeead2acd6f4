package filters

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
)

// DetailFetcher loads the full detail of a record by identifier.
type DetailFetcher[D any] func(ctx context.Context, id string) (*D, error)

// IDFunc extracts the detail identifier from a summary record. It returns ""
// when the record carries none.
type IDFunc[T any] func(record T) string

// SelectionView is a snapshot of the current selection.
type SelectionView[T any, D any] struct {
	Record  *T     `json:"record,omitempty"`
	ID      string `json:"id,omitempty"`
	Detail  *D     `json:"detail,omitempty"`
	Loading bool   `json:"loading"`
	Err     error  `json:"-"`
}

// Selection tracks the drill-down of one list view. Only the detail of the
// latest selection is ever installed; older fetches are canceled and their
// results discarded.
type Selection[T any, D any] struct {
	idOf   IDFunc[T]
	fetch  DetailFetcher[D]
	logger zerolog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	record     *T
	id         string
	detail     *D
	loading    bool
	err        error
}

// NewSelection creates a new selection.
func NewSelection[T any, D any](idOf IDFunc[T], fetch DetailFetcher[D], logger *zerolog.Logger) (*Selection[T, D], error) {
	if idOf == nil {
		return nil, fmt.Errorf("id function is required")
	}
	if fetch == nil {
		return nil, fmt.Errorf("detail fetcher is required")
	}
	l := log.Logger
	if logger != nil {
		l = *logger
	}
	return &Selection[T, D]{idOf: idOf, fetch: fetch, logger: l}, nil
}

// Select makes record the current selection and loads its detail.
func (s *Selection[T, D]) Select(ctx context.Context, record T) error {
	id := s.idOf(record)

	s.mu.Lock()
	generation := s.supersedeLocked()
	s.record = &record
	s.id = id
	if id == "" {
		// The record stays selected without a detail; the older fetch is
		// already superseded.
		s.err = errors.NewValidationError("record has no detail identifier", "")
		err := s.err
		s.mu.Unlock()
		return err
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true
	s.mu.Unlock()

	detail, err := s.fetch(fetchCtx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if generation != s.generation {
		s.logger.Debug().Str("id", id).Msg("discarding detail of stale selection")
		return nil
	}
	s.cancel = nil
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.detail = detail
	return nil
}

// Clear drops the selection and discards any in-flight detail fetch.
func (s *Selection[T, D]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.record = nil
	s.id = ""
}

// Current returns the current selection.
func (s *Selection[T, D]) Current() SelectionView[T, D] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SelectionView[T, D]{
		Record:  s.record,
		ID:      s.id,
		Detail:  s.detail,
		Loading: s.loading,
		Err:     s.err,
	}
}

func (s *Selection[T, D]) supersedeLocked() uint64 {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.detail = nil
	s.err = nil
	s.loading = false
	return s.generation
}
