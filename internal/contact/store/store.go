// Package store persists contact submissions. Two implementations: postgres
// for deployments, in-memory for tests and local development.
package store

import (
	"context"
	"errors"

	"breakpoint/internal/contact"
)

// ErrNotFound reports an unknown submission id.
var ErrNotFound = errors.New("submission not found")

type Store interface {
	Create(ctx context.Context, sub *contact.Submission) error
	// List returns all submissions ordered newest-first by creation time.
	List(ctx context.Context) ([]contact.Submission, error)
	Get(ctx context.Context, id string) (*contact.Submission, error)
}
