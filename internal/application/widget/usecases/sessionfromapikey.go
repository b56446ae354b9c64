package usecases

import (
	"context"

	"klippa/internal/application/widget/dto"
	"klippa/internal/domain/identity"
	"klippa/internal/domain/vendor"
	"klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
	"klippa/internal/shared/utils"
)

// CreateSessionFromAPIKeyCommand carries the API-key path inputs. Exactly
// one of ExternalUserID and ExternalEmail must be set.
type CreateSessionFromAPIKeyCommand struct {
	APIKey         string
	VendorSID      string
	ExternalUserID string
	ExternalEmail  string
}

// CreateSessionFromAPIKeyUseCase issues a widget session via the
// pre-shared vendor API key. This path has no replay-store dependency.
type CreateSessionFromAPIKeyUseCase struct {
	vendorRepo vendor.Repository
	userRepo   identity.Repository
	minter     SessionMinter
	logger     logger.Interface
}

// NewCreateSessionFromAPIKeyUseCase creates the use case
func NewCreateSessionFromAPIKeyUseCase(
	vendorRepo vendor.Repository,
	userRepo identity.Repository,
	minter SessionMinter,
	logger logger.Interface,
) *CreateSessionFromAPIKeyUseCase {
	return &CreateSessionFromAPIKeyUseCase{
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		minter:     minter,
		logger:     logger,
	}
}

// Execute runs the API-key session path.
func (uc *CreateSessionFromAPIKeyUseCase) Execute(ctx context.Context, cmd CreateSessionFromAPIKeyCommand) (*dto.SessionDTO, error) {
	if cmd.VendorSID == "" {
		return nil, errors.NewBadRequestError("vendor_id is required")
	}

	hasUserID := cmd.ExternalUserID != ""
	hasEmail := cmd.ExternalEmail != ""
	if hasUserID == hasEmail {
		return nil, errors.NewBadRequestError("exactly one of user_id or user_email must be provided")
	}

	v, err := uc.vendorRepo.GetBySID(ctx, cmd.VendorSID)
	if err != nil {
		return nil, err
	}

	if !v.HasAPIKey() {
		uc.logger.Warnw("vendor has no api key configured", "vendor", v.SID())
		return nil, errors.NewBadRequestError("vendor is not configured for API key access")
	}

	if !v.VerifyAPIKey(cmd.APIKey) {
		uc.logger.Warnw("api key mismatch",
			"vendor", v.SID(),
			"key_prefix", utils.MaskSecret(cmd.APIKey))
		return nil, errors.NewUnauthorizedError("Invalid API key")
	}

	externalID := cmd.ExternalUserID
	loggedID := externalID
	if hasEmail {
		externalID = cmd.ExternalEmail
		loggedID = utils.MaskEmail(cmd.ExternalEmail)
	}

	user, err := uc.userRepo.Upsert(ctx, v.ID(), externalID)
	if err != nil {
		uc.logger.Errorw("identity resolution failed",
			"vendor", v.SID(),
			"external_user", loggedID,
			"error", err)
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
