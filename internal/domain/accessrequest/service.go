package accessrequest

import (
	"context"

	"volentia/internal/core/apperror"
	"volentia/internal/core/tx"
	"volentia/internal/domain"
	"volentia/internal/ratelimit"
)

// Service handles access-request submissions.
//
// The limiter is injected so the in-memory implementation can be
// replaced by a shared store when the endpoint runs on more than one
// instance. The in-memory limiter does not survive restarts.
type Service struct {
	*domain.EntityService[*AccessRequest]
	limiter ratelimit.Limiter
}

// NewService creates a new AccessRequest service.
func NewService(repo Repository, txm tx.Manager, limiter ratelimit.Limiter) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*AccessRequest]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "access request",
	})
	return &Service{EntityService: base, limiter: limiter}
}

// Submit validates and persists one submission from the given source
// IP. The limiter is consulted first, so malformed submissions still
// consume the caller's quota.
func (s *Service) Submit(ctx context.Context, req *AccessRequest, sourceIP string) error {
	allowed, err := s.limiter.Allow(ctx, sourceIP)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if !allowed {
		return apperror.NewRateLimited(MsgRateLimited)
	}

	if err := req.Validate(ctx); err != nil {
		return err
	}

	req.SourceIP = sourceIP
	return s.Create(ctx, req)
}
