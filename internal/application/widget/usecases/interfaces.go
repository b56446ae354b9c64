package usecases

import "context"

// MintedSession is a platform-signed widget session token.
type MintedSession struct {
	Token     string
	ExpiresIn int64
}

// SessionMinter mints widget session tokens for a resolved identity.
type SessionMinter interface {
	Mint(userID, vendorID string) (*MintedSession, error)
}

// VerifiedPartnerToken is the identity carried by a verified partner token.
type VerifiedPartnerToken struct {
	Vendor         string
	ExternalUserID string
}

// PartnerTokenVerifier validates a partner-signed token against the
// vendor's partner secret, including replay detection.
type PartnerTokenVerifier interface {
	// VendorHint extracts the unverified vendor claim so the caller can
	// resolve the vendor whose secret verifies the token.
	VendorHint(token string) (string, error)

	// Verify checks signature, claims, expiry and replay.
	Verify(ctx context.Context, token, partnerSecret string) (*VerifiedPartnerToken, error)
}
