package handlers

import (
	"context"

	"klippa/internal/application/widget/dto"
	"klippa/internal/application/widget/usecases"
)

// Use case contracts consumed by the handlers. Handlers depend on these
// rather than the concrete use cases so tests can substitute fakes.

type CreateSessionFromTokenExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateSessionFromTokenCommand) (*dto.SessionDTO, error)
}

type CreateSessionFromAPIKeyExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateSessionFromAPIKeyCommand) (*dto.SessionDTO, error)
}

type ListAvailableCouponsExecutor interface {
	Execute(ctx context.Context, query usecases.ListAvailableCouponsQuery) (*dto.AvailabilityDTO, error)
}

type ClaimCouponExecutor interface {
	Execute(ctx context.Context, cmd usecases.ClaimCouponCommand) (*dto.ClaimDTO, error)
}
