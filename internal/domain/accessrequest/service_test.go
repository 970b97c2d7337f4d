package accessrequest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
	"volentia/internal/core/id"
	"volentia/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	created []*AccessRequest
}

func (r *fakeRepo) Create(ctx context.Context, req *AccessRequest) error {
	r.created = append(r.created, req)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, entityID id.ID) (*AccessRequest, error) {
	return nil, apperror.NewNotFound("access request", entityID)
}

func (r *fakeRepo) Update(ctx context.Context, req *AccessRequest) error { return nil }

func (r *fakeRepo) Delete(ctx context.Context, entityID id.ID) error { return nil }

func (r *fakeRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*AccessRequest], error) {
	return domain.ListResult[*AccessRequest]{}, nil
}

func (r *fakeRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) { return false, nil }

// fakeLimiter allows the first n calls per key.
type fakeLimiter struct {
	limit int
	seen  map[string]int
}

func newFakeLimiter(limit int) *fakeLimiter {
	return &fakeLimiter{limit: limit, seen: make(map[string]int)}
}

func (l *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func TestSubmit_PersistsValidRequest(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{}, newFakeLimiter(3))

	err := svc.Submit(context.Background(), validRequest(), "1.2.3.4")
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "1.2.3.4", repo.created[0].SourceIP)
}

func TestSubmit_FourthRequestRateLimited(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{}, newFakeLimiter(3))

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Submit(context.Background(), validRequest(), "1.2.3.4"))
	}

	err := svc.Submit(context.Background(), validRequest(), "1.2.3.4")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRateLimited, appErr.Code)
	assert.Equal(t, MsgRateLimited, appErr.Message)
	assert.Len(t, repo.created, 3)

	// Other IPs are unaffected.
	assert.NoError(t, svc.Submit(context.Background(), validRequest(), "5.6.7.8"))
}

func TestSubmit_MalformedRequestsConsumeQuota(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{}, newFakeLimiter(3))

	bad := validRequest()
	bad.RequestType = "bogus"
	for i := 0; i < 3; i++ {
		err := svc.Submit(context.Background(), bad, "1.2.3.4")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	}

	err := svc.Submit(context.Background(), validRequest(), "1.2.3.4")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRateLimited, appErr.Code)
	assert.Empty(t, repo.created)
}
