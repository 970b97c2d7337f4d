package crud

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row is a plain field-map record for tests.
type row map[string]any

func (r row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// fakeStore is an in-memory Store with scriptable failures.
type fakeStore struct {
	mu      sync.Mutex
	rows    []row
	failGet error
	failMut error

	inserts int
	updates int
	deletes int
}

func (s *fakeStore) Select(_ context.Context, _ string, _ *Order) ([]row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet != nil {
		return nil, s.failGet
	}
	return append([]row(nil), s.rows...), nil
}

func (s *fakeStore) Insert(_ context.Context, _ string, rec row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMut != nil {
		return s.failMut
	}
	s.inserts++
	s.rows = append(s.rows, rec)
	return nil
}

func (s *fakeStore) UpdateByKey(_ context.Context, _ string, rec row, keyField string, key any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMut != nil {
		return s.failMut
	}
	s.updates++
	for i, r := range s.rows {
		if r[keyField] == key {
			s.rows[i] = rec
		}
	}
	return nil
}

func (s *fakeStore) DeleteByKey(_ context.Context, _ string, keyField string, key any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMut != nil {
		return s.failMut
	}
	s.deletes++
	out := s.rows[:0]
	for _, r := range s.rows {
		if r[keyField] != key {
			out = append(out, r)
		}
	}
	s.rows = out
	return nil
}

func newTestController(store *fakeStore, searchFields ...string) (*Controller[row], *RecordingNotifier) {
	cfg := NewConfig("cities")
	cfg.SearchFields = searchFields
	notifier := &RecordingNotifier{}
	return New[row](cfg, store, notifier), notifier
}

func TestFetch_ReplacesCollection(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1", "name": "Milano"}, {"id": "2", "name": "Torino"}}}
	c, _ := newTestController(store)

	c.Fetch(context.Background())

	require.Len(t, c.Items(), 2)
	assert.False(t, c.Loading())
}

func TestFetch_FailureLeavesCollectionUntouched(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1", "name": "Milano"}}}
	c, notifier := newTestController(store)

	c.Fetch(context.Background())
	require.Len(t, c.Items(), 1)

	store.mu.Lock()
	store.failGet = errors.New("boom")
	store.mu.Unlock()

	c.Fetch(context.Background())

	assert.Len(t, c.Items(), 1, "previous collection must survive a failed fetch")
	assert.False(t, c.Loading())
	require.NotNil(t, notifier.Last())
	assert.Equal(t, MsgLoadFailed, notifier.Last().Message)
	assert.Equal(t, LevelError, notifier.Last().Level)
}

func TestFetch_AfterCloseIsDiscarded(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1"}}}
	c, _ := newTestController(store)

	c.Close()
	c.Fetch(context.Background())

	assert.Empty(t, c.Items())
}

func TestFilteredItems_BlankTermIsIdentity(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1", "name": "Milano"}, {"id": "2", "name": "Torino"}}}
	c, _ := newTestController(store, "name")
	c.Fetch(context.Background())

	assert.Equal(t, c.Items(), c.FilteredItems())
}

func TestFilteredItems_NoSearchFieldsDisablesFiltering(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1", "name": "Milano"}}}
	c, _ := newTestController(store) // no search fields
	c.Fetch(context.Background())
	c.SetSearchTerm("zzz")

	assert.Len(t, c.FilteredItems(), 1)
}

func TestFilteredItems_CaseInsensitiveSubstring(t *testing.T) {
	store := &fakeStore{rows: []row{
		{"id": "1", "name": "Milano", "province": "MI"},
		{"id": "2", "name": "Torino", "province": "TO"},
		{"id": "3", "name": "Napoli", "province": nil},
	}}
	c, _ := newTestController(store, "name", "province")
	c.Fetch(context.Background())

	tests := []struct {
		term string
		want int
	}{
		{"MILA", 1},
		{"o", 3},   // Milano, Torino, Napoli
		{"mi", 1},  // Milano matches name and province, counted once
		{"xyz", 0},
	}
	for _, tt := range tests {
		c.SetSearchTerm(tt.term)
		got := c.FilteredItems()
		assert.Len(t, got, tt.want, "term %q", tt.term)
		// filtered set must always be a subset of the collection
		for _, g := range got {
			assert.Contains(t, c.Items(), g)
		}
	}
}

func TestFilteredItems_NilValuesNeverMatch(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1", "name": nil}}}
	c, _ := newTestController(store, "name")
	c.Fetch(context.Background())
	c.SetSearchTerm("nil")

	// fmt of a nil value is "<nil>"; it must not leak into search results
	assert.Empty(t, c.FilteredItems())
}

func TestSave_NoSelectionInserts(t *testing.T) {
	store := &fakeStore{}
	c, notifier := newTestController(store)

	called := false
	ok := c.Save(context.Background(), row{"id": "9", "name": "Bologna"}, func() { called = true })

	require.True(t, ok)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 0, store.updates)
	assert.True(t, called)
	assert.Equal(t, MsgSaveSuccess, notifier.Last().Message)
}

func TestSave_SelectionWithTruthyIDUpdates(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1", "name": "Milano"}}}
	c, _ := newTestController(store)
	c.Fetch(context.Background())

	sel := row{"id": "1", "name": "Milano"}
	c.Select(&sel)
	c.SetDialogOpen(true)

	ok := c.Save(context.Background(), row{"id": "1", "name": "Milano Centro"}, nil)

	require.True(t, ok)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, 0, store.inserts)
	assert.False(t, c.DialogOpen())
	assert.Nil(t, c.Selected())
}

func TestSave_FalsyIDFallsThroughToInsert(t *testing.T) {
	// Documented edge case: a present-but-falsy key (empty string, zero)
	// reads as absent and produces an insert, not an update.
	tests := []struct {
		name string
		key  any
	}{
		{"empty string", ""},
		{"zero int", 0},
		{"nil", nil},
		{"false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			c, _ := newTestController(store)
			sel := row{"id": tt.key}
			c.Select(&sel)

			require.True(t, c.Save(context.Background(), row{"name": "x"}, nil))
			assert.Equal(t, 1, store.inserts)
			assert.Equal(t, 0, store.updates)
		})
	}
}

func TestSave_FailureLeavesStateUnchanged(t *testing.T) {
	store := &fakeStore{failMut: errors.New("boom")}
	c, notifier := newTestController(store)

	sel := row{"id": "1"}
	c.Select(&sel)
	c.SetDialogOpen(true)

	ok := c.Save(context.Background(), row{"id": "1"}, nil)

	require.False(t, ok)
	assert.True(t, c.DialogOpen(), "dialog must stay open on failure")
	assert.NotNil(t, c.Selected())
	assert.False(t, c.Saving())
	assert.Equal(t, MsgSaveFailed, notifier.Last().Message)
}

func TestDelete_NoSelectionIsNoOp(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1"}}}
	c, _ := newTestController(store)
	c.Fetch(context.Background())

	ok := c.Delete(context.Background(), nil)

	assert.False(t, ok)
	assert.Equal(t, 0, store.deletes, "store must not be called without a selection")
}

func TestDelete_SelectionWithoutKeyIsNoOp(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1"}}}
	c, _ := newTestController(store)
	c.Fetch(context.Background())

	sel := row{"name": "Milano"}
	c.Select(&sel)

	ok := c.Delete(context.Background(), nil)

	assert.False(t, ok)
	assert.Equal(t, 0, store.deletes, "store must not be called without a key")
}

func TestDelete_SuccessClearsSelectionAndDialog(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1", "name": "Milano"}}}
	c, notifier := newTestController(store)
	c.Fetch(context.Background())

	sel := row{"id": "1"}
	c.Select(&sel)
	c.SetDeleteDialogOpen(true)

	ok := c.Delete(context.Background(), nil)

	require.True(t, ok)
	assert.False(t, c.DeleteDialogOpen())
	assert.Nil(t, c.Selected())
	assert.Empty(t, c.Items(), "collection re-fetched after delete")
	assert.Equal(t, MsgDeleteSuccess, notifier.Last().Message)
}

func TestDelete_FailureKeepsDialogOpen(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1"}}, failMut: errors.New("boom")}
	c, notifier := newTestController(store)

	sel := row{"id": "1"}
	c.Select(&sel)
	c.SetDeleteDialogOpen(true)

	ok := c.Delete(context.Background(), nil)

	require.False(t, ok)
	assert.True(t, c.DeleteDialogOpen())
	assert.NotNil(t, c.Selected())
	assert.Equal(t, MsgDeleteFailed, notifier.Last().Message)
}

func TestMount_HonorsFetchOnMount(t *testing.T) {
	store := &fakeStore{rows: []row{{"id": "1"}}}

	cfg := NewConfig("cities")
	c := New[row](cfg, store, nil)
	c.Mount(context.Background())
	assert.Len(t, c.Items(), 1)

	cfg.FetchOnMount = false
	manual := New[row](cfg, store, nil)
	manual.Mount(context.Background())
	assert.Empty(t, manual.Items())
}
