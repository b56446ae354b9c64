package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "klippa/internal/shared/errors"
	"klippa/internal/shared/logger"
)

// ReasonJTIReplay is the stable wire code for a replayed partner token.
const ReasonJTIReplay = "JTI_REPLAY"

// PartnerClaims is the payload of a partner-signed token. The partner
// backend signs these with the vendor's partner secret; lifetime is on the
// order of minutes and each jti is single-use.
type PartnerClaims struct {
	Vendor         string `json:"vendor"`
	ExternalUserID string `json:"external_user_id"`
	jwt.RegisteredClaims
}

// ReplayGuard is the once-only marker the verifier delegates replay
// detection to. Markers are scoped per vendor: partners generate jtis
// independently, so two vendors may issue the same jti without colliding.
type ReplayGuard interface {
	// Claim atomically marks the vendor's jti as seen with the given TTL.
	// Returns false when the jti was already seen within its window. An
	// error means the backing store is unreachable; callers must treat
	// that as a denial.
	Claim(ctx context.Context, vendor, jti string, ttl time.Duration) (bool, error)
}

// PartnerTokenVerifier validates partner-signed tokens. It performs no I/O
// other than the replay guard call: the caller resolves the vendor and
// supplies its partner secret.
type PartnerTokenVerifier struct {
	guard    ReplayGuard
	ttlFloor time.Duration
	logger   logger.Interface
}

// NewPartnerTokenVerifier creates a new partner token verifier
func NewPartnerTokenVerifier(guard ReplayGuard, ttlFloor time.Duration, logger logger.Interface) *PartnerTokenVerifier {
	if ttlFloor <= 0 {
		ttlFloor = time.Minute
	}
	return &PartnerTokenVerifier{
		guard:    guard,
		ttlFloor: ttlFloor,
		logger:   logger,
	}
}

// UnverifiedVendor extracts the vendor claim without verifying the
// signature. The caller uses it to look up the vendor whose partner
// secret then verifies the token; nothing else may be trusted from it.
func (v *PartnerTokenVerifier) UnverifiedVendor(tokenString string) (string, error) {
	claims := &PartnerClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", apperrors.NewUnauthorizedError("Invalid token")
	}
	if claims.Vendor == "" {
		return "", apperrors.NewUnauthorizedError("Invalid token: missing required claims")
	}
	return claims.Vendor, nil
}

// Verify checks signature, required claims, expiry and replay, in that
// order. On success the returned claims identify the vendor and the
// partner-side user.
func (v *PartnerTokenVerifier) Verify(ctx context.Context, tokenString, partnerSecret string) (*PartnerClaims, error) {
	secret := []byte(partnerSecret)

	token, err := jwt.ParseWithClaims(tokenString, &PartnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.NewUnauthorizedError("Invalid token signature")
		case errors.Is(err, jwt.ErrTokenExpired):
			// A malformed payload is reported as malformed even when the
			// token is also expired.
			if token != nil {
				if claims, ok := token.Claims.(*PartnerClaims); ok && missingRequiredClaims(claims) {
					return nil, apperrors.NewUnauthorizedError("Invalid token: missing required claims")
				}
			}
			return nil, apperrors.NewUnauthorizedError("Token has expired")
		default:
			return nil, apperrors.NewUnauthorizedError("Invalid token")
		}
	}

	claims, ok := token.Claims.(*PartnerClaims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("Invalid token")
	}
	if missingRequiredClaims(claims) {
		return nil, apperrors.NewUnauthorizedError("Invalid token: missing required claims")
	}

	ttl := v.ttlFloor
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > ttl {
			ttl = remaining
		}
	}

	accepted, err := v.guard.Claim(ctx, claims.Vendor, claims.ID, ttl)
	if err != nil {
		// Fail closed: with the replay store down, accepting would allow
		// unbounded token reuse.
		v.logger.Errorw("replay guard unavailable, denying token", "error", err)
		return nil, apperrors.NewUnavailableError("replay protection unavailable")
	}
	if !accepted {
		v.logger.Warnw("partner token replay detected",
			"vendor", claims.Vendor, "jti", claims.ID)
		return nil, apperrors.NewConflictError("token has already been used").
			WithReason(ReasonJTIReplay)
	}

	return claims, nil
}

func missingRequiredClaims(claims *PartnerClaims) bool {
	return claims.Vendor == "" || claims.ExternalUserID == "" || claims.ID == ""
}
