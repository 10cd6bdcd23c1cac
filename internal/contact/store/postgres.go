package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"breakpoint/internal/contact"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the submissions table if it does not exist yet. The schema
// is small enough that a migration tool would be overhead.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS contact_submissions (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			contact    TEXT NOT NULL,
			subject    TEXT NOT NULL,
			message    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate contact_submissions: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, sub *contact.Submission) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contact_submissions (id, name, email, contact, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.Name, sub.Email, sub.Contact, sub.Subject, sub.Message, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]contact.Submission, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, contact, subject, message, created_at
		FROM contact_submissions
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []contact.Submission
	for rows.Next() {
		var sub contact.Submission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Contact,
			&sub.Subject, &sub.Message, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*contact.Submission, error) {
	var sub contact.Submission
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, contact, subject, message, created_at
		FROM contact_submissions
		WHERE id = $1`, id).
		Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Contact,
			&sub.Subject, &sub.Message, &sub.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &sub, nil
}
