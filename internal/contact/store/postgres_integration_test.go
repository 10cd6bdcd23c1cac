//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"breakpoint/internal/contact"
	"breakpoint/internal/contact/store"
	"breakpoint/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.Pool)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(context.Background(), "TRUNCATE contact_submissions")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newSubmission(subject string, createdAt time.Time) *contact.Submission {
	return &contact.Submission{
		ID:        uuid.NewString(),
		Name:      "Ada",
		Email:     "ada@example.com",
		Contact:   "555-0100",
		Subject:   subject,
		Message:   "",
		CreatedAt: createdAt,
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := context.Background()
	sub := s.newSubmission("hello", time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.Create(ctx, sub))

	got, err := s.store.Get(ctx, sub.ID)
	s.Require().NoError(err)
	s.Equal(sub.ID, got.ID)
	s.Equal(sub.Subject, got.Subject)
	s.Equal("", got.Message)
	s.True(sub.CreatedAt.Equal(got.CreatedAt))
}

func (s *PostgresStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Create(ctx, s.newSubmission("first", base)))
	s.Require().NoError(s.store.Create(ctx, s.newSubmission("second", base.Add(time.Minute))))

	subs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(subs, 2)
	s.Equal("second", subs[0].Subject)
	s.Equal("first", subs[1].Subject)
}

func (s *PostgresStoreSuite) TestGetUnknownID() {
	_, err := s.store.Get(context.Background(), uuid.NewString())
	s.ErrorIs(err, store.ErrNotFound)
}
