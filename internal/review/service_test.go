package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/apperr"
)

type memoryStore struct {
	reviews []Review
	err     error
}

func (m *memoryStore) Create(_ context.Context, review *Review) error {
	if m.err != nil {
		return m.err
	}
	review.ID = uint(len(m.reviews) + 1)
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *memoryStore) GetAll(context.Context) ([]Review, error) {
	return m.reviews, m.err
}

func TestCreateReview(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store)

	r, err := svc.CreateReview(context.Background(), CreateReviewRequest{Name: "Kim", Rating: 5, Comment: "Lovely crust"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, r.ID)

	all, err := svc.GetAllReviews(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateReviewValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateReviewRequest
	}{
		{"missing name", CreateReviewRequest{Rating: 3, Comment: "ok"}},
		{"missing comment", CreateReviewRequest{Name: "Kim", Rating: 3}},
		{"rating zero", CreateReviewRequest{Name: "Kim", Rating: 0, Comment: "ok"}},
		{"rating six", CreateReviewRequest{Name: "Kim", Rating: 6, Comment: "ok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			_, err := NewService(store).CreateReview(context.Background(), tt.req)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			assert.Empty(t, store.reviews)
		})
	}
}

func TestGetAllReviewsStorageError(t *testing.T) {
	svc := NewService(&memoryStore{err: apperr.Storage("failed to access review", errors.New("conn reset"))})
	_, err := svc.GetAllReviews(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindStorage))
}
