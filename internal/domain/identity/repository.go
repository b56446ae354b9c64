package identity

import "context"

// Repository is the persistence port for the external identity mapping.
type Repository interface {
	// Upsert resolves (vendorID, externalID) to a user, creating the row on
	// first contact. Implementations must be race-safe: concurrent upserts
	// for the same pair converge to one row via a storage-enforced unique
	// constraint, never a read-then-write sequence.
	Upsert(ctx context.Context, vendorID uint, externalID string) (*User, error)

	// GetBySID returns the user with the given public identifier, or a
	// not-found error.
	GetBySID(ctx context.Context, sid string) (*User, error)
}
