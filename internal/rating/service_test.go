package rating

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstores/internal/storefront"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) UpdateStoreRating(ctx context.Context, storeID string, rating float64) error {
	args := m.Called(ctx, storeID, rating)
	return args.Error(0)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) RecordChange(ctx context.Context, c *Change) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockRepo) ListChanges(ctx context.Context, storeID string, limit int) ([]Change, error) {
	args := m.Called(ctx, storeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Change), args.Error(1)
}

func TestService_Rate(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards and records", func(t *testing.T) {
		sink := new(mockSink)
		repo := new(mockRepo)
		s := NewService(sink, repo, nil)

		sink.On("UpdateStoreRating", ctx, "1", float64(4)).Return(nil)
		repo.On("RecordChange", ctx, mock.MatchedBy(func(c *Change) bool {
			return c.StoreID == "1" && c.UserID == "user-1" && c.Rating == 4 && c.Status == StatusForwarded
		})).Return(nil)

		err := s.Rate(ctx, "user-1", "1", 4)
		assert.NoError(t, err)
		sink.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("rejects out of range", func(t *testing.T) {
		sink := new(mockSink)
		repo := new(mockRepo)
		s := NewService(sink, repo, nil)

		assert.ErrorIs(t, s.Rate(ctx, "", "1", 0), ErrInvalidRating)
		assert.ErrorIs(t, s.Rate(ctx, "", "1", 6), ErrInvalidRating)
		sink.AssertNotCalled(t, "UpdateStoreRating", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "RecordChange", mock.Anything, mock.Anything)
	})

	t.Run("records upstream failure", func(t *testing.T) {
		sink := new(mockSink)
		repo := new(mockRepo)
		s := NewService(sink, repo, nil)

		sink.On("UpdateStoreRating", ctx, "1", float64(2)).Return(fmt.Errorf("%w: timeout", storefront.ErrUpstreamFetch))
		repo.On("RecordChange", ctx, mock.MatchedBy(func(c *Change) bool {
			return c.Status == StatusFailed && c.Error != ""
		})).Return(nil)

		err := s.Rate(ctx, "", "1", 2)
		assert.ErrorIs(t, err, storefront.ErrUpstreamFetch)
		repo.AssertExpectations(t)
	})

	t.Run("history failure does not fail the rating", func(t *testing.T) {
		sink := new(mockSink)
		repo := new(mockRepo)
		s := NewService(sink, repo, nil)

		sink.On("UpdateStoreRating", ctx, "1", float64(5)).Return(nil)
		repo.On("RecordChange", ctx, mock.Anything).Return(errors.New("db error"))

		assert.NoError(t, s.Rate(ctx, "", "1", 5))
	})
}

func TestService_History(t *testing.T) {
	repo := new(mockRepo)
	s := NewService(new(mockSink), repo, nil)

	repo.On("ListChanges", mock.Anything, "1", 10).Return([]Change{{ID: "9", StoreID: "1"}}, nil)

	changes, err := s.History(context.Background(), "1", 10)
	require.NoError(t, err)
	assert.Len(t, changes, 1)
}

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo(3)

	for i, store := range []string{"1", "2", "1", "1"} {
		require.NoError(t, repo.RecordChange(ctx, &Change{StoreID: store, Rating: float64(i + 1)}))
	}

	changes, err := repo.ListChanges(ctx, "1", 0)
	require.NoError(t, err)
	require.Len(t, changes, 2, "oldest entry is evicted")
	assert.Equal(t, float64(4), changes[0].Rating)
	assert.Equal(t, "4", changes[0].ID)

	changes, err = repo.ListChanges(ctx, "1", 1)
	require.NoError(t, err)
	assert.Len(t, changes, 1)

	changes, err = repo.ListChanges(ctx, "none", 0)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
