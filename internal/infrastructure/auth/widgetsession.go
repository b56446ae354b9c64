package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "klippa/internal/shared/errors"
)

// SessionClaims is the payload of a widget session token. It binds a
// resolved platform user to the vendor whose widget issued the session.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id"`
	jwt.RegisteredClaims
}

// WidgetSession is a minted session token plus its metadata.
type WidgetSession struct {
	Token     string
	UserID    string
	VendorID  string
	ExpiresIn int64
}

// WidgetSessionService mints and validates platform-signed session tokens.
// The signing secret is platform-wide and distinct from every partner
// secret; session lifetime is independent of (and normally longer than)
// partner token lifetime.
type WidgetSessionService struct {
	secret     []byte
	expMinutes int
}

// NewWidgetSessionService creates a new widget session service
func NewWidgetSessionService(secret string, expMinutes int) *WidgetSessionService {
	return &WidgetSessionService{
		secret:     []byte(secret),
		expMinutes: expMinutes,
	}
}

// Mint signs a session token for the given user and vendor.
func (s *WidgetSessionService) Mint(userID, vendorID string) (*WidgetSession, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(s.expMinutes) * time.Minute)

	claims := &SessionClaims{
		UserID:   userID,
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &WidgetSession{
		Token:     signed,
		UserID:    userID,
		VendorID:  vendorID,
		ExpiresIn: int64(s.expMinutes * 60),
	}, nil
}

// Verify parses and verifies a bare session token string.
func (s *WidgetSessionService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired session")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired session")
	}
	if claims.UserID == "" || claims.VendorID == "" {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired session")
	}

	return claims, nil
}

// ValidateBearer parses an Authorization header of the form
// "Bearer <token>" and verifies the token. Malformed input yields a clean
// unauthorized error, never a panic, so HTTP handlers respond 401
// uniformly.
func (s *WidgetSessionService) ValidateBearer(authHeader string) (*SessionClaims, error) {
	if authHeader == "" {
		return nil, apperrors.NewUnauthorizedError("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, apperrors.NewUnauthorizedError("invalid authorization header format")
	}

	return s.Verify(parts[1])
}
