package twofa

import "errors"

var (
	// ErrInvalidState signals an operation attempted from the wrong
	// lifecycle state, e.g. confirming with no pending enrollment.
	ErrInvalidState = errors.New("two-factor state does not allow this operation")

	// ErrVerificationFailed signals a code mismatch. The user may retry.
	ErrVerificationFailed = errors.New("verification code did not match")

	// ErrConflict signals a concurrent state change detected by a
	// compare-and-set write. The caller should refresh and retry.
	ErrConflict = errors.New("two-factor record changed concurrently")

	// ErrStorageUnavailable signals a storage failure distinct from a
	// missing record. Retriable by the caller.
	ErrStorageUnavailable = errors.New("two-factor storage unavailable")

	// ErrNotFound is returned by stores when no record exists for a user.
	ErrNotFound = errors.New("two-factor record not found")

	// ErrAccessDenied signals an identity mismatch at the persistence
	// boundary. Not retriable.
	ErrAccessDenied = errors.New("access denied")
)
