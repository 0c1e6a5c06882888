package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CredentialRepository persists the bearer credential in a single named slot
// that outlives the process. It applies no expiry logic of its own.
type CredentialRepository interface {
	Save(ctx context.Context, credential string) error
	Load(ctx context.Context) (credential string, found bool, err error)
	Clear(ctx context.Context) error
}

// Querier is the subset of pgxpool.Pool used by the Postgres repository.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresCredentialRepository struct {
	db   Querier
	slot string
}

// NewPostgresCredentialRepository returns a Postgres-backed implementation
// storing the slot as a row of credential_slots.
func NewPostgresCredentialRepository(db Querier, slot string) CredentialRepository {
	return &postgresCredentialRepository{db: db, slot: slot}
}

func (r *postgresCredentialRepository) Save(ctx context.Context, credential string) error {
	const query = `
        INSERT INTO credential_slots (slot, credential, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (slot) DO UPDATE SET credential = EXCLUDED.credential, updated_at = NOW()`

	if _, err := r.db.Exec(ctx, query, r.slot, credential); err != nil {
		return fmt.Errorf("save credential slot %q: %w", r.slot, err)
	}
	return nil
}

func (r *postgresCredentialRepository) Load(ctx context.Context) (string, bool, error) {
	const query = `SELECT credential FROM credential_slots WHERE slot=$1`

	var credential string
	if err := r.db.QueryRow(ctx, query, r.slot).Scan(&credential); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load credential slot %q: %w", r.slot, err)
	}
	return credential, true, nil
}

func (r *postgresCredentialRepository) Clear(ctx context.Context) error {
	const query = `DELETE FROM credential_slots WHERE slot=$1`

	if _, err := r.db.Exec(ctx, query, r.slot); err != nil {
		return fmt.Errorf("clear credential slot %q: %w", r.slot, err)
	}
	return nil
}
