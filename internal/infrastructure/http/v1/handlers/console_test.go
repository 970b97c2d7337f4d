package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
	"volentia/internal/domain/crud"
	"volentia/internal/infrastructure/http/v1/middleware"
	"volentia/internal/infrastructure/storage/postgres/tablestore"
)

// fakeRowStore keeps rows per table in memory and records mutations.
type fakeRowStore struct {
	mu      sync.Mutex
	rows    map[string][]tablestore.Row
	inserts []tablestore.Row
	updates []tablestore.Row
	deleted []any
	fail    bool
}

func newFakeRowStore() *fakeRowStore {
	return &fakeRowStore{rows: make(map[string][]tablestore.Row)}
}

func (s *fakeRowStore) Select(ctx context.Context, table string, orderBy *crud.Order) ([]tablestore.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, apperror.NewInternal(context.DeadlineExceeded)
	}
	return append([]tablestore.Row(nil), s.rows[table]...), nil
}

func (s *fakeRowStore) Insert(ctx context.Context, table string, rec tablestore.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return apperror.NewInternal(context.DeadlineExceeded)
	}
	s.inserts = append(s.inserts, rec)
	s.rows[table] = append(s.rows[table], rec)
	return nil
}

func (s *fakeRowStore) UpdateByKey(ctx context.Context, table string, rec tablestore.Row, keyField string, key any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return apperror.NewInternal(context.DeadlineExceeded)
	}
	s.updates = append(s.updates, rec)
	return nil
}

func (s *fakeRowStore) DeleteByKey(ctx context.Context, table string, keyField string, key any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return apperror.NewInternal(context.DeadlineExceeded)
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func newConsoleRouter(store crud.Store[tablestore.Row]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	tables := []ConsoleTable{
		{Table: "cat_cities", OrderBy: &crud.Order{Column: "name", Ascending: true}, SearchFields: []string{"name", "province"}},
	}
	handler := NewConsoleHandler(NewBaseHandler(), store, tables)
	handler.RegisterRoutes(router.Group("/admin/console"))
	return router
}

func consoleDo(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestConsoleListTables(t *testing.T) {
	router := newConsoleRouter(newFakeRowStore())

	rec := consoleDo(router, http.MethodGet, "/admin/console/tables", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Tables []string `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"cat_cities"}, resp.Tables)
}

func TestConsoleUnknownTable(t *testing.T) {
	router := newConsoleRouter(newFakeRowStore())

	rec := consoleDo(router, http.MethodGet, "/admin/console/doc_invoices", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConsoleListFiltersBySearchTerm(t *testing.T) {
	store := newFakeRowStore()
	store.rows["cat_cities"] = []tablestore.Row{
		{"id": "1", "name": "Milano", "province": "MI"},
		{"id": "2", "name": "Torino", "province": "TO"},
	}
	router := newConsoleRouter(store)

	rec := consoleDo(router, http.MethodGet, "/admin/console/cat_cities?search=mila", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Table string           `json:"table"`
		Items []tablestore.Row `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cat_cities", resp.Table)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Milano", resp.Items[0]["name"])
}

func TestConsoleSaveInsertsWithoutSelection(t *testing.T) {
	store := newFakeRowStore()
	router := newConsoleRouter(store)

	body := `{"record":{"name":"Bergamo","province":"BG"}}`
	rec := consoleDo(router, http.MethodPost, "/admin/console/cat_cities", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success       bool                `json:"success"`
		Notifications []crud.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, store.inserts, 1)
	assert.Empty(t, store.updates)
	require.NotEmpty(t, resp.Notifications)
	assert.Equal(t, crud.MsgSaveSuccess, resp.Notifications[len(resp.Notifications)-1].Message)
}

func TestConsoleSaveUpdatesSelectedRecord(t *testing.T) {
	store := newFakeRowStore()
	router := newConsoleRouter(store)

	body := `{"record":{"name":"Bergamo"},"selected":{"id":"42","name":"Bergamo"}}`
	rec := consoleDo(router, http.MethodPost, "/admin/console/cat_cities", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.inserts)
	require.Len(t, store.updates, 1)
}

func TestConsoleSaveFalsyKeyInserts(t *testing.T) {
	store := newFakeRowStore()
	router := newConsoleRouter(store)

	// A selection whose key is present but empty reads as "no key yet".
	body := `{"record":{"name":"Bergamo"},"selected":{"id":"","name":"Bergamo"}}`
	rec := consoleDo(router, http.MethodPost, "/admin/console/cat_cities", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.inserts, 1)
	assert.Empty(t, store.updates)
}

func TestConsoleSaveConcurrentRequestsKeepSelectionsApart(t *testing.T) {
	store := newFakeRowStore()
	router := newConsoleRouter(store)

	// Interleave updates with selection-less inserts. An update losing
	// its selection to a concurrent request would land as an insert.
	const n = 8
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			body := `{"record":{"name":"Milano Centro"},"selected":{"id":"1","name":"Milano"}}`
			consoleDo(router, http.MethodPost, "/admin/console/cat_cities", body)
		}()
		go func() {
			defer wg.Done()
			body := `{"record":{"name":"Bergamo"}}`
			consoleDo(router, http.MethodPost, "/admin/console/cat_cities", body)
		}()
	}
	wg.Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.updates, n)
	assert.Len(t, store.inserts, n)
}

func TestConsoleSaveFailureReportsNotification(t *testing.T) {
	store := newFakeRowStore()
	store.fail = true
	router := newConsoleRouter(store)

	body := `{"record":{"name":"Bergamo"}}`
	rec := consoleDo(router, http.MethodPost, "/admin/console/cat_cities", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success       bool                `json:"success"`
		Notifications []crud.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotEmpty(t, resp.Notifications)
	assert.Equal(t, crud.MsgSaveFailed, resp.Notifications[0].Message)
}

func TestConsoleDelete(t *testing.T) {
	store := newFakeRowStore()
	router := newConsoleRouter(store)

	rec := consoleDo(router, http.MethodDelete, "/admin/console/cat_cities/42", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []any{"42"}, store.deleted)
}
