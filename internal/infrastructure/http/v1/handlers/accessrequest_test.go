package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
	"volentia/internal/core/id"
	"volentia/internal/domain"
	"volentia/internal/domain/accessrequest"
	"volentia/internal/infrastructure/http/v1/middleware"
	"volentia/internal/ratelimit"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	created []*accessrequest.AccessRequest
	fail    bool
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *accessrequest.AccessRequest) error {
	if r.fail {
		return apperror.NewInternal(context.DeadlineExceeded)
	}
	r.created = append(r.created, req)
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, entityID id.ID) (*accessrequest.AccessRequest, error) {
	return nil, apperror.NewNotFound("access request", entityID)
}

func (r *fakeRequestRepo) Update(ctx context.Context, req *accessrequest.AccessRequest) error {
	return nil
}

func (r *fakeRequestRepo) Delete(ctx context.Context, entityID id.ID) error { return nil }

func (r *fakeRequestRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return nil
}

func (r *fakeRequestRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*accessrequest.AccessRequest], error) {
	return domain.ListResult[*accessrequest.AccessRequest]{}, nil
}

func (r *fakeRequestRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return false, nil
}

func newAccessRequestRouter(repo *fakeRequestRepo, limiter ratelimit.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	service := accessrequest.NewService(repo, fakeTxManager{}, limiter)
	handler := NewAccessRequestHandler(NewBaseHandler(), service)
	router.POST("/api/v1/access-requests", handler.Submit)
	return router
}

func submitFrom(router *gin.Engine, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/access-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"request_type":"company_lead","email":"hr@acme.example","company_name":"ACME"}`

func TestSubmitAccessRequest_OK(t *testing.T) {
	repo := &fakeRequestRepo{}
	router := newAccessRequestRouter(repo, ratelimit.NewInMemory(ratelimit.AccessRequestConfig()))

	rec := submitFrom(router, "1.2.3.4", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	require.Len(t, repo.created, 1)
	assert.Equal(t, "1.2.3.4", repo.created[0].SourceIP)
}

func TestSubmitAccessRequest_ValidationMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bogus request type",
			body: `{"request_type":"gimme","email":"a@b.example"}`,
			want: accessrequest.MsgInvalidType,
		},
		{
			name: "missing email",
			body: `{"request_type":"company_lead"}`,
			want: accessrequest.MsgInvalidEmail,
		},
		{
			name: "oversized message",
			body: `{"request_type":"company_lead","email":"a@b.example","message":"` + strings.Repeat("x", 1001) + `"}`,
			want: accessrequest.MsgFieldTooLong,
		},
		{
			name: "malformed json",
			body: `{{{`,
			want: accessrequest.MsgInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccessRequestRouter(&fakeRequestRepo{}, ratelimit.NewInMemory(ratelimit.AccessRequestConfig()))

			rec := submitFrom(router, "1.2.3.4", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp["error"])
		})
	}
}

func TestSubmitAccessRequest_RateLimited(t *testing.T) {
	repo := &fakeRequestRepo{}
	router := newAccessRequestRouter(repo, ratelimit.NewInMemory(ratelimit.AccessRequestConfig()))

	for i := 0; i < 3; i++ {
		rec := submitFrom(router, "1.2.3.4", validBody)
		require.Equal(t, http.StatusOK, rec.Code, "request %d within the window must pass", i+1)
	}

	rec := submitFrom(router, "1.2.3.4", validBody)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, accessrequest.MsgRateLimited, resp["error"])

	// Another IP has its own counter.
	rec = submitFrom(router, "5.6.7.8", validBody)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitAccessRequest_PersistenceFailure(t *testing.T) {
	repo := &fakeRequestRepo{fail: true}
	router := newAccessRequestRouter(repo, ratelimit.NewInMemory(ratelimit.AccessRequestConfig()))

	rec := submitFrom(router, "1.2.3.4", validBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmitAccessRequest_MethodNotAllowed(t *testing.T) {
	router := newAccessRequestRouter(&fakeRequestRepo{}, ratelimit.NewInMemory(ratelimit.AccessRequestConfig()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/access-requests", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSubmitAccessRequest_Preflight(t *testing.T) {
	router := newAccessRequestRouter(&fakeRequestRepo{}, ratelimit.NewInMemory(ratelimit.AccessRequestConfig()))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/access-requests", nil)
	req.Header.Set("Origin", "https://widget.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
