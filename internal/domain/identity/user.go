// Package identity maps partner-supplied external identities to stable
// internal users. The mapping (vendor, external id) -> user is a pure
// function: the same pair always resolves to the same user.
package identity

import (
	"fmt"
	"time"

	"klippa/internal/shared/id"
)

// User is a widget end user as known to the platform. Users are created
// implicitly on first contact; there is no registration flow.
type User struct {
	userID     uint
	sid        string
	vendorID   uint
	externalID string
	createdAt  time.Time
}

// NewUser creates a user for a (vendor, external id) pair. The external id
// is an opaque partner value, an account id or an email; no format is
// imposed beyond non-emptiness.
func NewUser(vendorID uint, externalID string) (*User, error) {
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if externalID == "" {
		return nil, fmt.Errorf("external ID is required")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixUser, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user sid: %w", err)
	}

	return &User{
		sid:        sid,
		vendorID:   vendorID,
		externalID: externalID,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(userID uint, sid string, vendorID uint, externalID string, createdAt time.Time) *User {
	return &User{
		userID:     userID,
		sid:        sid,
		vendorID:   vendorID,
		externalID: externalID,
		createdAt:  createdAt,
	}
}

func (u *User) ID() uint             { return u.userID }
func (u *User) SID() string          { return u.sid }
func (u *User) VendorID() uint       { return u.vendorID }
func (u *User) ExternalID() string   { return u.externalID }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// SetID assigns the persistence identifier after insert.
func (u *User) SetID(userID uint) error {
	if u.userID != 0 {
		return fmt.Errorf("user ID already set")
	}
	u.userID = userID
	return nil
}
