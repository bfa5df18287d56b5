package blog

import (
	"context"
	"strings"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

// Store is the persistence the service needs
type Store interface {
	Create(ctx context.Context, blog *Blog) error
	GetByID(ctx context.Context, id uint) (*Blog, error)
	GetAll(ctx context.Context) ([]Blog, error)
}

// Service handles business logic for blog posts
type Service struct {
	repo Store
}

// NewService creates a new blog service
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// CreateBlog validates and stores a post; the image is optional
func (s *Service) CreateBlog(ctx context.Context, req CreateBlogRequest) (*Blog, error) {
	blog := &Blog{
		Title:    strings.TrimSpace(req.Title),
		Excerpt:  strings.TrimSpace(req.Excerpt),
		Content:  strings.TrimSpace(req.Content),
		ImageURL: req.ImageURL,
	}
	if blog.Title == "" || blog.Excerpt == "" || blog.Content == "" {
		return nil, apperr.Validation("Title, excerpt, and content are required")
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, err
	}
	logger.Info(ctx).Uint("blog_id", blog.ID).Str("title", blog.Title).Msg("Blog post created")
	return blog, nil
}

// GetBlog retrieves a post by ID
func (s *Service) GetBlog(ctx context.Context, id uint) (*Blog, error) {
	if id == 0 {
		return nil, apperr.Validation("Invalid blog ID")
	}
	blog, err := s.repo.GetByID(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.NotFound("Blog post not found")
	}
	return blog, err
}

// GetAllBlogs retrieves every post
func (s *Service) GetAllBlogs(ctx context.Context) ([]Blog, error) {
	blogs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []Blog{}
	}
	return blogs, nil
}
