package twofa

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentStatus is the externally observable two-factor state.
type EnrollmentStatus string

const (
	// StatusDisabled means no active protection and no pending secret.
	StatusDisabled EnrollmentStatus = "disabled"
	// StatusPending means a secret exists but has never been verified.
	// It must not gate login.
	StatusPending EnrollmentStatus = "pending_verification"
	// StatusEnabled means a verified secret gates login.
	StatusEnabled EnrollmentStatus = "enabled"
)

// Record is the persisted two-factor state for one user. Secret holds the
// encrypted form; only the service sees plaintext.
type Record struct {
	UserID    uuid.UUID
	Secret    string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// statusOf derives the lifecycle state from a record. A nil record or an
// empty secret means the user has no protection at all.
func statusOf(rec *Record) EnrollmentStatus {
	switch {
	case rec == nil || rec.Secret == "":
		return StatusDisabled
	case rec.Enabled:
		return StatusEnabled
	default:
		return StatusPending
	}
}
