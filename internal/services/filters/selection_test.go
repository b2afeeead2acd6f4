package filters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
)

type detail struct {
	ID string
}

func rowID(r row) string { return r.ID }

func TestNewSelection_Validation(t *testing.T) {
	_, err := filters.NewSelection[row, detail](nil, func(context.Context, string) (*detail, error) { return nil, nil }, nil)
	assert.Error(t, err)

	_, err = filters.NewSelection[row, detail](rowID, nil, nil)
	assert.Error(t, err)
}

func TestSelection_LoadsDetail(t *testing.T) {
	s, err := filters.NewSelection[row, detail](rowID, func(_ context.Context, id string) (*detail, error) {
		return &detail{ID: id}, nil
	}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Select(context.Background(), row{ID: "a"}))

	current := s.Current()
	assert.Equal(t, "a", current.ID)
	assert.False(t, current.Loading)
	require.NotNil(t, current.Detail)
	assert.Equal(t, "a", current.Detail.ID)

	s.Clear()
	assert.Nil(t, s.Current().Record)
	assert.Nil(t, s.Current().Detail)
}

func TestSelection_MissingIdentifier(t *testing.T) {
	s, err := filters.NewSelection[row, detail](rowID, func(context.Context, string) (*detail, error) {
		t.Fatal("fetch must not run")
		return nil, nil
	}, nil)
	require.NoError(t, err)

	err = s.Select(context.Background(), row{})

	assert.True(t, errors.IsValidationError(err))
}

func TestSelection_LatestSelectionWins(t *testing.T) {
	// Arrange
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	s, err := filters.NewSelection[row, detail](rowID, func(ctx context.Context, id string) (*detail, error) {
		if id == "a" {
			close(startedA)
			<-releaseA
			return &detail{ID: "a"}, nil
		}
		return &detail{ID: id}, nil
	}, nil)
	require.NoError(t, err)

	doneA := make(chan error, 1)
	go func() { doneA <- s.Select(context.Background(), row{ID: "a"}) }()
	<-startedA

	// Act
	require.NoError(t, s.Select(context.Background(), row{ID: "b"}))
	close(releaseA)

	// Assert
	select {
	case err := <-doneA:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stale detail fetch did not return")
	}
	current := s.Current()
	assert.Equal(t, "b", current.ID)
	require.NotNil(t, current.Detail)
	assert.Equal(t, "b", current.Detail.ID)
}

func TestSelection_RecordWithoutIdentifierSupersedesPending(t *testing.T) {
	// Arrange
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	s, err := filters.NewSelection[row, detail](rowID, func(ctx context.Context, id string) (*detail, error) {
		close(startedA)
		<-releaseA
		return &detail{ID: id}, nil
	}, nil)
	require.NoError(t, err)

	doneA := make(chan error, 1)
	go func() { doneA <- s.Select(context.Background(), row{ID: "a"}) }()
	<-startedA

	// Act
	err = s.Select(context.Background(), row{})
	close(releaseA)

	// Assert
	assert.True(t, errors.IsValidationError(err))
	select {
	case err := <-doneA:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stale detail fetch did not return")
	}
	current := s.Current()
	require.NotNil(t, current.Record)
	assert.Equal(t, "", current.Record.ID)
	assert.Equal(t, "", current.ID)
	assert.Nil(t, current.Detail)
	assert.False(t, current.Loading)
	assert.True(t, errors.IsValidationError(current.Err))
}

func TestSelection_SupersededFetchIsCanceled(t *testing.T) {
	canceled := make(chan struct{})
	started := make(chan struct{})
	s, err := filters.NewSelection[row, detail](rowID, func(ctx context.Context, id string) (*detail, error) {
		close(started)
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	}, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Select(context.Background(), row{ID: "a"}) }()
	<-started
	s.Clear()

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch was not canceled")
	}
	assert.NoError(t, <-done)
	assert.Nil(t, s.Current().Detail)
	assert.NoError(t, s.Current().Err)
}
