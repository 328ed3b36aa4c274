package twofa

import (
	"context"

	"github.com/google/uuid"
)

// Store is the narrow persistence gateway for two-factor records. All
// mutations that change the observable state use compare-and-set semantics:
// the write applies only when the record is still in the expected prior
// state, otherwise the store returns ErrConflict.
//
// Stores must keep ErrNotFound distinct from infrastructure failures, which
// they wrap in ErrStorageUnavailable.
type Store interface {
	// Get returns the record for a user, or ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*Record, error)

	// SavePending upserts an unverified secret, forcing enabled=false and
	// discarding any previous backup codes. Last writer wins; no protection
	// is active yet, so no CAS is needed here.
	SavePending(ctx context.Context, userID uuid.UUID, encSecret string) error

	// Enable flips the record to enabled and stores backup code hashes in
	// one atomic write, expecting the record to be pending (secret set,
	// not enabled). Returns ErrConflict when that expectation fails.
	Enable(ctx context.Context, userID uuid.UUID, codeHashes []string) error

	// Disable removes the record and its backup codes, expecting it to be
	// enabled. Returns ErrConflict when that expectation fails.
	Disable(ctx context.Context, userID uuid.UUID) error

	// ConsumeBackupCode marks the matching unused code as used and reports
	// whether a code was consumed.
	ConsumeBackupCode(ctx context.Context, userID uuid.UUID, codeHash string) (bool, error)
}
