package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"breakpoint/internal/contact"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func (s *InMemoryStoreSuite) newSubmission(subject string, createdAt time.Time) *contact.Submission {
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

func (s *InMemoryStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	first := s.newSubmission("first", base)
	second := s.newSubmission("second", base.Add(time.Minute))
	s.Require().NoError(s.store.Create(ctx, first))
	s.Require().NoError(s.store.Create(ctx, second))

	subs, err := s.store.List(ctx)
	s.NoError(err)
	s.Require().Len(subs, 2)
	s.Equal("second", subs[0].Subject)
	s.Equal("first", subs[1].Subject)
}

func (s *InMemoryStoreSuite) TestListIsIdempotent() {
	ctx := context.Background()
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Create(ctx, s.newSubmission("a", base)))
	s.Require().NoError(s.store.Create(ctx, s.newSubmission("b", base.Add(time.Second))))

	one, err := s.store.List(ctx)
	s.Require().NoError(err)
	two, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Equal(one, two)
}

func (s *InMemoryStoreSuite) TestGet() {
	ctx := context.Background()
	sub := s.newSubmission("hello", time.Now())
	s.Require().NoError(s.store.Create(ctx, sub))

	got, err := s.store.Get(ctx, sub.ID)
	s.NoError(err)
	s.Equal(sub, got)

	_, err = s.store.Get(ctx, uuid.NewString())
	s.ErrorIs(err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestEmptyMessageSurvivesRoundTrip() {
	ctx := context.Background()
	sub := s.newSubmission("no message", time.Now())
	s.Require().NoError(s.store.Create(ctx, sub))

	got, err := s.store.Get(ctx, sub.ID)
	s.NoError(err)
	s.Equal("", got.Message)
}
