package usecases

import (
	"context"

	"klippa/internal/application/widget/dto"
	"klippa/internal/domain/identity"
	"klippa/internal/domain/vendor"
	"klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// CreateSessionFromTokenCommand carries the signed-token path input.
type CreateSessionFromTokenCommand struct {
	Token string
}

// CreateSessionFromTokenUseCase exchanges a partner-signed token for a
// widget session. The vendor is resolved from the token's unverified
// vendor claim solely to obtain its partner secret; everything else rides
// on the verifier.
type CreateSessionFromTokenUseCase struct {
	vendorRepo vendor.Repository
	userRepo   identity.Repository
	verifier   PartnerTokenVerifier
	minter     SessionMinter
	logger     logger.Interface
}

// NewCreateSessionFromTokenUseCase creates the use case
func NewCreateSessionFromTokenUseCase(
	vendorRepo vendor.Repository,
	userRepo identity.Repository,
	verifier PartnerTokenVerifier,
	minter SessionMinter,
	logger logger.Interface,
) *CreateSessionFromTokenUseCase {
	return &CreateSessionFromTokenUseCase{
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		verifier:   verifier,
		minter:     minter,
		logger:     logger,
	}
}

// Execute runs the signed-token session path.
func (uc *CreateSessionFromTokenUseCase) Execute(ctx context.Context, cmd CreateSessionFromTokenCommand) (*dto.SessionDTO, error) {
	if cmd.Token == "" {
		return nil, errors.NewBadRequestError("token is required")
	}

	vendorSID, err := uc.verifier.VendorHint(cmd.Token)
	if err != nil || vendorSID == "" {
		return nil, errors.NewUnauthorizedError("Invalid token")
	}

	v, err := uc.vendorRepo.GetBySID(ctx, vendorSID)
	if err != nil {
		// The vendor claim is attacker-controlled; an unknown vendor gets
		// the same response as a bad signature.
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("Invalid token")
		}
		return nil, err
	}

	if !v.HasPartnerSecret() {
		uc.logger.Warnw("vendor has no partner secret configured", "vendor", v.SID())
		return nil, errors.NewBadRequestError("vendor is not configured for partner token access")
	}

	verified, err := uc.verifier.Verify(ctx, cmd.Token, v.PartnerSecret())
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.Upsert(ctx, v.ID(), verified.ExternalUserID)
	if err != nil {
		uc.logger.Errorw("identity resolution failed", "vendor", v.SID(), "error", err)
		return nil, errors.NewInternalError("failed to resolve user identity")
	}

	session, err := uc.minter.Mint(user.SID(), v.SID())
	if err != nil {
		uc.logger.Errorw("failed to mint session", "vendor", v.SID(), "error", err)
		return nil, errors.NewInternalError("failed to issue session")
	}

	return &dto.SessionDTO{
		SessionToken: session.Token,
		UserID:       user.SID(),
		VendorID:     v.SID(),
		ExpiresIn:    session.ExpiresIn,
	}, nil
}
