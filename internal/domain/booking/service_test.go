package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
	appcontext "volentia/internal/core/context"
	"volentia/internal/core/id"
	"volentia/internal/core/numerator"
	"volentia/internal/domain"
	"volentia/internal/domain/catalogs/experience"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeExperienceRepo struct {
	experiences map[id.ID]*experience.Experience
}

func (r *fakeExperienceRepo) Create(ctx context.Context, e *experience.Experience) error {
	r.experiences[e.ID] = e
	return nil
}

func (r *fakeExperienceRepo) GetByID(ctx context.Context, entityID id.ID) (*experience.Experience, error) {
	e, ok := r.experiences[entityID]
	if !ok {
		return nil, apperror.NewNotFound("experience", entityID)
	}
	return e, nil
}

func (r *fakeExperienceRepo) Update(ctx context.Context, e *experience.Experience) error {
	r.experiences[e.ID] = e
	return nil
}

func (r *fakeExperienceRepo) Delete(ctx context.Context, entityID id.ID) error {
	delete(r.experiences, entityID)
	return nil
}

func (r *fakeExperienceRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return nil
}

func (r *fakeExperienceRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*experience.Experience], error) {
	return domain.ListResult[*experience.Experience]{}, nil
}

func (r *fakeExperienceRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := r.experiences[entityID]
	return ok, nil
}

func (r *fakeExperienceRepo) ListByAssociation(ctx context.Context, associationID id.ID, filter domain.ListFilter) (domain.ListResult[*experience.Experience], error) {
	return domain.ListResult[*experience.Experience]{}, nil
}

func (r *fakeExperienceRepo) ListPublished(ctx context.Context, filter experience.PublicFilter) (domain.ListResult[*experience.Experience], error) {
	return domain.ListResult[*experience.Experience]{}, nil
}

type fakeBookingRepo struct {
	bookings map[id.ID]*Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[id.ID]*Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, entityID id.ID) (*Booking, error) {
	b, ok := r.bookings[entityID]
	if !ok {
		return nil, apperror.NewNotFound("booking", entityID)
	}
	return b, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return apperror.NewNotFound("booking", b.ID)
	}
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, entityID id.ID) error {
	delete(r.bookings, entityID)
	return nil
}

func (r *fakeBookingRepo) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return nil
}

func (r *fakeBookingRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Booking], error) {
	return domain.ListResult[*Booking]{}, nil
}

func (r *fakeBookingRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := r.bookings[entityID]
	return ok, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID id.ID, filter domain.ListFilter) (domain.ListResult[*Booking], error) {
	return domain.ListResult[*Booking]{}, nil
}

func (r *fakeBookingRepo) ListByExperience(ctx context.Context, experienceID id.ID, filter domain.ListFilter) (domain.ListResult[*Booking], error) {
	return domain.ListResult[*Booking]{}, nil
}

func (r *fakeBookingRepo) CountConfirmed(ctx context.Context, experienceID id.ID) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.ExperienceID == experienceID && b.Status == StatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) FindActive(ctx context.Context, userID, experienceID id.ID) (*Booking, error) {
	for _, b := range r.bookings {
		if b.UserID == userID && b.ExperienceID == experienceID && b.Status == StatusConfirmed {
			return b, nil
		}
	}
	return nil, apperror.NewNotFound("booking", experienceID)
}

type fixture struct {
	svc      *Service
	repo     *fakeBookingRepo
	expRepo  *fakeExperienceRepo
	exp      *experience.Experience
	assocID  id.ID
	userID   id.ID
	userCtx  context.Context
	adminCtx context.Context
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	assocID := id.New()
	exp := experience.New(assocID, "Pulizia del parco")
	exp.Published = true
	exp.Date = time.Now().Add(48 * time.Hour)
	exp.Capacity = capacity

	expRepo := &fakeExperienceRepo{experiences: map[id.ID]*experience.Experience{exp.ID: exp}}
	repo := newFakeBookingRepo()

	expSvc := experience.NewService(expRepo, fakeTxManager{})
	svc := NewService(repo, expSvc, &numerator.MockGenerator{}, fakeTxManager{})

	userID := id.New()
	userCtx := appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID: userID.String(),
		Role:   appcontext.RoleEndUser,
	})
	adminCtx := appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID:        id.New().String(),
		Role:          appcontext.RoleAssociationAdmin,
		AssociationID: assocID.String(),
	})

	return &fixture{
		svc:      svc,
		repo:     repo,
		expRepo:  expRepo,
		exp:      exp,
		assocID:  assocID,
		userID:   userID,
		userCtx:  userCtx,
		adminCtx: adminCtx,
	}
}

func TestBook_ConfirmsAndNumbersReservation(t *testing.T) {
	f := newFixture(t, 10)

	b, err := f.svc.Book(f.userCtx, f.exp.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, f.userID, b.UserID)
	assert.Equal(t, "MOCK-2026-00001", b.Reference)
	assert.Len(t, f.repo.bookings, 1)
}

func TestBook_RequiresAuthentication(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.svc.Book(context.Background(), f.exp.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestBook_RejectsDuplicate(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.svc.Book(f.userCtx, f.exp.ID)
	require.NoError(t, err)

	_, err = f.svc.Book(f.userCtx, f.exp.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyBooked, appErr.Code)
	assert.Equal(t, "Hai già prenotato questa esperienza", appErr.Message)
}

func TestBook_EnforcesCapacity(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.svc.Book(f.userCtx, f.exp.ID)
	require.NoError(t, err)

	otherCtx := appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID: id.New().String(),
		Role:   appcontext.RoleEndUser,
	})
	_, err = f.svc.Book(otherCtx, f.exp.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeCapacityFull, appErr.Code)
	assert.Equal(t, "L'esperienza ha raggiunto la capienza massima", appErr.Message)
}

func TestBook_CancelledBookingFreesTheSpot(t *testing.T) {
	f := newFixture(t, 1)

	b, err := f.svc.Book(f.userCtx, f.exp.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(f.userCtx, b.ID)
	require.NoError(t, err)

	otherCtx := appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID: id.New().String(),
		Role:   appcontext.RoleEndUser,
	})
	_, err = f.svc.Book(otherCtx, f.exp.ID)
	assert.NoError(t, err)
}

func TestBook_RejectsClosedExperience(t *testing.T) {
	tests := []struct {
		name  string
		mutate func(e *experience.Experience)
	}{
		{name: "unpublished", mutate: func(e *experience.Experience) { e.Published = false }},
		{name: "past date", mutate: func(e *experience.Experience) { e.Date = time.Now().Add(-time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 10)
			tt.mutate(f.exp)

			_, err := f.svc.Book(f.userCtx, f.exp.ID)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
			assert.Equal(t, "L'esperienza non è più prenotabile", appErr.Message)
		})
	}
}

func TestCancel_OwnerOnly(t *testing.T) {
	f := newFixture(t, 10)

	b, err := f.svc.Book(f.userCtx, f.exp.ID)
	require.NoError(t, err)

	otherCtx := appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID: id.New().String(),
		Role:   appcontext.RoleEndUser,
	})
	_, err = f.svc.Cancel(otherCtx, b.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	cancelled, err := f.svc.Cancel(f.userCtx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// A cancelled booking cannot be cancelled again.
	_, err = f.svc.Cancel(f.userCtx, b.ID)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestMarkAttended_OwnAssociationOnly(t *testing.T) {
	f := newFixture(t, 10)

	b, err := f.svc.Book(f.userCtx, f.exp.ID)
	require.NoError(t, err)

	strangerCtx := appcontext.WithUser(context.Background(), &appcontext.UserContext{
		UserID:        id.New().String(),
		Role:          appcontext.RoleAssociationAdmin,
		AssociationID: id.New().String(),
	})
	_, err = f.svc.MarkAttended(strangerCtx, b.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	attended, err := f.svc.MarkAttended(f.adminCtx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAttended, attended.Status)
}
