package booking

import (
	"context"
	"time"

	"volentia/internal/core/apperror"
	appcontext "volentia/internal/core/context"
	"volentia/internal/core/id"
	"volentia/internal/core/numerator"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
	"volentia/internal/domain/catalogs/experience"
)

// referenceConfig drives the user-visible booking number
// (PRE-2026-00042). Strict strategy: the number is generated inside the
// booking transaction and must not leave gaps.
var referenceConfig = numerator.DefaultConfig("PRE")

// Service provides business logic for bookings.
type Service struct {
	*domain.EntityService[*Booking]
	repo        Repository
	experiences *experience.Service
	refs        numerator.Generator
	txm         tx.Manager
	now         func() time.Time
}

// NewService creates a new Booking service.
func NewService(repo Repository, experiences *experience.Service, refs numerator.Generator, txm tx.Manager) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*Booking]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "booking",
	})

	return &Service{
		EntityService: base,
		repo:          repo,
		experiences:   experiences,
		refs:          refs,
		txm:           txm,
		now:           time.Now,
	}
}

func currentUserID(ctx context.Context) (id.ID, error) {
	userID, err := id.Parse(appcontext.GetUserID(ctx))
	if err != nil {
		return id.Nil(), apperror.NewUnauthorized("authentication required")
	}
	return userID, nil
}

// Book reserves a spot on an experience for the calling user. The
// capacity and duplicate checks run in the same transaction as the
// insert so concurrent requests cannot overbook.
func (s *Service) Book(ctx context.Context, experienceID id.ID) (*Booking, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var booking *Booking
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		exp, err := s.experiences.GetByID(ctx, experienceID)
		if err != nil {
			return err
		}
		if !exp.IsOpenOn(s.now()) {
			return apperror.NewBusinessRule(apperror.CodeBusinessRule,
				"L'esperienza non è più prenotabile")
		}

		if _, err := s.repo.FindActive(ctx, userID, experienceID); err == nil {
			return apperror.NewBusinessRule(apperror.CodeAlreadyBooked,
				"Hai già prenotato questa esperienza")
		} else if !apperror.IsNotFound(err) {
			return err
		}

		if exp.Capacity > 0 {
			confirmed, err := s.repo.CountConfirmed(ctx, experienceID)
			if err != nil {
				return err
			}
			if confirmed >= int64(exp.Capacity) {
				return apperror.NewBusinessRule(apperror.CodeCapacityFull,
					"L'esperienza ha raggiunto la capienza massima")
			}
		}

		booking = New(userID, experienceID)
		booking.Reference, err = s.refs.GetNextNumber(ctx, referenceConfig, nil, s.now())
		if err != nil {
			return err
		}
		if err := booking.Validate(ctx); err != nil {
			return err
		}
		return s.repo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel cancels the caller's booking. Only the booking owner may
// cancel, and only while it is still confirmed.
func (s *Service) Cancel(ctx context.Context, bookingID id.ID) (*Booking, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, apperror.NewForbidden("booking belongs to another user")
	}
	if b.Status != StatusConfirmed {
		return nil, apperror.NewConflict("booking is not confirmed")
	}

	b.Status = StatusCancelled
	if err := s.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// MarkAttended records that the user showed up. Reserved to the
// experience's association admin (or super admin).
func (s *Service) MarkAttended(ctx context.Context, bookingID id.ID) (*Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	exp, err := s.experiences.GetByID(ctx, b.ExperienceID)
	if err != nil {
		return nil, err
	}
	user := appcontext.GetUser(ctx)
	if user == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	if user.Role != appcontext.RoleSuperAdmin && user.AssociationID != exp.AssociationID.String() {
		return nil, apperror.NewForbidden("experience belongs to another association")
	}
	if b.Status != StatusConfirmed {
		return nil, apperror.NewConflict("booking is not confirmed")
	}

	b.Status = StatusAttended
	if err := s.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListOwn retrieves the calling user's bookings.
func (s *Service) ListOwn(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Booking], error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return domain.ListResult[*Booking]{}, err
	}
	return s.repo.ListByUser(ctx, userID, filter)
}

// ListForExperience retrieves bookings on one of the caller's
// experiences.
func (s *Service) ListForExperience(ctx context.Context, experienceID id.ID, filter domain.ListFilter) (domain.ListResult[*Booking], error) {
	exp, err := s.experiences.GetByID(ctx, experienceID)
	if err != nil {
		return domain.ListResult[*Booking]{}, err
	}
	user := appcontext.GetUser(ctx)
	if user == nil {
		return domain.ListResult[*Booking]{}, apperror.NewUnauthorized("authentication required")
	}
	if user.Role != appcontext.RoleSuperAdmin && user.AssociationID != exp.AssociationID.String() {
		return domain.ListResult[*Booking]{}, apperror.NewForbidden("experience belongs to another association")
	}
	return s.repo.ListByExperience(ctx, experienceID, filter)
}
