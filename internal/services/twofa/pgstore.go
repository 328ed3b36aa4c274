package twofa

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists two-factor records in PostgreSQL. Compare-and-set is
// implemented with conditional writes checked via affected-row counts.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	rec := Record{UserID: userID}
	err := s.db.QueryRow(ctx, `
		SELECT secret, enabled, created_at, updated_at
		FROM twofa_records WHERE user_id = $1
	`, userID).Scan(&rec.Secret, &rec.Enabled, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get record", err)
	}
	return &rec, nil
}

func (s *PGStore) SavePending(ctx context.Context, userID uuid.UUID, encSecret string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO twofa_records (user_id, secret, enabled)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (user_id) DO UPDATE
		SET secret = EXCLUDED.secret, enabled = FALSE, updated_at = now()
	`, userID, encSecret)
	if err != nil {
		return storageErr("save pending secret", err)
	}
	// Codes from a previous enrollment are void once a new secret exists.
	if _, err := tx.Exec(ctx, `DELETE FROM twofa_backup_codes WHERE user_id = $1`, userID); err != nil {
		return storageErr("clear backup codes", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

func (s *PGStore) Enable(ctx context.Context, userID uuid.UUID, codeHashes []string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE twofa_records
		SET enabled = TRUE, updated_at = now()
		WHERE user_id = $1 AND enabled = FALSE AND secret <> ''
	`, userID)
	if err != nil {
		return storageErr("enable record", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrConflict
	}
	for _, hash := range codeHashes {
		if _, err := tx.Exec(ctx, `
			INSERT INTO twofa_backup_codes (id, user_id, code_hash)
			VALUES ($1, $2, $3)
		`, uuid.New(), userID, hash); err != nil {
			return storageErr("save backup code", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

func (s *PGStore) Disable(ctx context.Context, userID uuid.UUID) error {
	// Backup codes go with the record via ON DELETE CASCADE.
	ct, err := s.db.Exec(ctx, `
		DELETE FROM twofa_records WHERE user_id = $1 AND enabled = TRUE
	`, userID)
	if err != nil {
		return storageErr("disable record", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (s *PGStore) ConsumeBackupCode(ctx context.Context, userID uuid.UUID, codeHash string) (bool, error) {
	ct, err := s.db.Exec(ctx, `
		UPDATE twofa_backup_codes
		SET used_at = now()
		WHERE user_id = $1 AND code_hash = $2 AND used_at IS NULL
	`, userID, codeHash)
	if err != nil {
		return false, storageErr("consume backup code", err)
	}
	return ct.RowsAffected() > 0, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
