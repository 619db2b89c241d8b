package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagecrest/pulsedash/internal/domain/credential"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Credentials ---

func (s *Store) ListCredentials(ctx context.Context) ([]credential.Credential, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, password_hash, is_admin, display_name, created_at
		 FROM credentials ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []credential.Credential
	for rows.Next() {
		var c credential.Credential
		if err := rows.Scan(&c.ID, &c.PasswordHash, &c.IsAdmin, &c.DisplayName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

func (s *Store) CreateCredential(ctx context.Context, c *credential.Credential) error {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO credentials (password_hash, is_admin, display_name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		c.PasswordHash, c.IsAdmin, c.DisplayName)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

func (s *Store) UpdateCredentialPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE credentials SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	return execExpectOne(tag, err, "update credential %s", id)
}
