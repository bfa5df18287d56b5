package review

import (
	"context"
	"strings"

	"github.com/tair/nutribakery/pkg/apperr"
)

type Store interface {
	Create(ctx context.Context, review *Review) error
	GetAll(ctx context.Context) ([]Review, error)
}

// Service handles business logic for reviews
type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateReview(ctx context.Context, req CreateReviewRequest) (*Review, error) {
	review := &Review{
		Name:    strings.TrimSpace(req.Name),
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}
	if review.Name == "" || review.Comment == "" {
		return nil, apperr.Validation("name and comment are required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Service) GetAllReviews(ctx context.Context) ([]Review, error) {
	reviews, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}
