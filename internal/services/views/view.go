package views

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

// CallSelection is the selection state of a call-log view.
type CallSelection = filters.SelectionView[calllog.Call, calllog.Transcript]

// Snapshot is a consistent view of a call-log list and its selection.
type Snapshot struct {
	ID        string                     `json:"id"`
	List      filters.View[calllog.Call] `json:"list"`
	Selection CallSelection              `json:"selection"`
}

// CallsView is one call-log list view.
type CallsView struct {
	id        string
	client    calllog.Client
	pipeline  *filters.Pipeline[calllog.Call]
	selection *filters.Selection[calllog.Call, calllog.Transcript]
	store     Store
	logger    zerolog.Logger

	// mu orders persist against close, so nothing is written once the
	// view leaves the registry.
	mu     sync.Mutex
	closed bool
}

func newCallsView(id string, client calllog.Client, store Store, pageSize int, logger zerolog.Logger) (*CallsView, error) {
	v := &CallsView{
		id:     id,
		client: client,
		store:  store,
		logger: logger.With().Str("view_id", id).Logger(),
	}

	pipeline, err := filters.NewPipeline(&filters.Config[calllog.Call]{
		Fetcher:  filters.FetcherFunc[calllog.Call](client.ListCalls),
		Refine:   calllog.Refine,
		PageSize: pageSize,
		Logger:   &v.logger,
	})
	if err != nil {
		return nil, err
	}

	selection, err := filters.NewSelection[calllog.Call, calllog.Transcript](calllog.Call.DetailID, client.GetTranscript, &v.logger)
	if err != nil {
		return nil, err
	}

	v.pipeline = pipeline
	v.selection = selection
	return v, nil
}

// ID returns the view identifier.
func (v *CallsView) ID() string {
	return v.id
}

// Snapshot returns the current list and selection.
func (v *CallsView) Snapshot() Snapshot {
	return Snapshot{
		ID:        v.id,
		List:      v.pipeline.Snapshot(),
		Selection: v.selection.Current(),
	}
}

// Stage edits one staged filter.
func (v *CallsView) Stage(k filters.Key, value string) filters.Gates {
	return v.pipeline.Stage(k, value)
}

// StageSet replaces the staged filters.
func (v *CallsView) StageSet(s filters.Set) filters.Gates {
	return v.pipeline.StageSet(s)
}

// Apply promotes the staged filters and fetches page 1.
func (v *CallsView) Apply(ctx context.Context) error {
	err := v.pipeline.Apply(detach(ctx))
	if errors.IsValidationError(err) {
		return err
	}
	v.persist(ctx, err)
	return err
}

// Clear empties all filters and fetches page 1.
func (v *CallsView) Clear(ctx context.Context) error {
	err := v.pipeline.Clear(detach(ctx))
	v.persist(ctx, err)
	return err
}

// RemoveOne clears a single filter.
func (v *CallsView) RemoveOne(ctx context.Context, k filters.Key) error {
	err := v.pipeline.RemoveOne(detach(ctx), k)
	v.persist(ctx, err)
	return err
}

// SetPage moves to another page.
func (v *CallsView) SetPage(ctx context.Context, page int) error {
	err := v.pipeline.SetPage(detach(ctx), page)
	v.persist(ctx, err)
	return err
}

// Reload re-runs the current query.
func (v *CallsView) Reload(ctx context.Context) error {
	return v.pipeline.Reload(detach(ctx))
}

// Select selects the call with the given record id from the current page
// and loads its transcript.
func (v *CallsView) Select(ctx context.Context, recordID string) error {
	snap := v.pipeline.Snapshot()
	if snap.Result != nil {
		for _, call := range snap.Result.Items {
			if call.ID == recordID {
				return v.selection.Select(detach(ctx), call)
			}
		}
	}
	return errors.NewNotFoundError("call on current page", recordID)
}

// ClearSelection drops the selection.
func (v *CallsView) ClearSelection() {
	v.selection.Clear()
}

// Export downloads the calls matching the applied server filters as CSV.
func (v *CallsView) Export(ctx context.Context) (*gateway.Blob, error) {
	return v.client.ExportCalls(ctx, v.pipeline.Snapshot().Applied)
}

func (v *CallsView) restore(ctx context.Context) {
	state, err := v.store.Get(ctx, v.id)
	if err != nil {
		v.logger.Warn().Err(err).Msg("failed to restore view state")
		return
	}
	if state == nil {
		return
	}
	applied := filters.FromMap(state.Applied)
	if _, err := filters.Promote(applied); err != nil {
		v.logger.Warn().Err(err).Msg("discarding persisted filters that no longer validate")
		return
	}
	v.pipeline.Restore(applied, state.Page)
	v.logger.Debug().Int("page", state.Page).Msg("view state restored")
}

func (v *CallsView) persist(ctx context.Context, opErr error) {
	if errors.IsSessionExpired(opErr) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		v.logger.Debug().Msg("view closed, state not persisted")
		return
	}
	snap := v.pipeline.Snapshot()
	if err := v.store.Set(detach(ctx), v.id, snap.Applied.Map(), snap.Page); err != nil {
		v.logger.Warn().Err(err).Msg("failed to persist view state")
	}
}

// close cancels in-flight work and stops further persistence.
func (v *CallsView) close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.pipeline.Cancel()
	v.selection.Clear()
}

// detach drops request cancellation. Superseding fetches still cancel.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
