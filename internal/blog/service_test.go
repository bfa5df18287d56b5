package blog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/nutribakery/pkg/apperr"
)

type memoryStore struct {
	mu    sync.Mutex
	blogs []Blog
}

func (m *memoryStore) Create(_ context.Context, blog *Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog.ID = uint(len(m.blogs) + 1)
	blog.CreatedAt = time.Now()
	m.blogs = append(m.blogs, *blog)
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id uint) (*Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.blogs {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, apperr.NotFound("blog post not found")
}

func (m *memoryStore) GetAll(context.Context) ([]Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Blog(nil), m.blogs...), nil
}

func TestCreateAndGetBlog(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memoryStore{})

	created, err := svc.CreateBlog(ctx, CreateBlogRequest{Title: " Rye ", Excerpt: "short", Content: "long"})
	require.NoError(t, err)
	assert.Equal(t, "Rye", created.Title)
	assert.Empty(t, created.ImageURL)

	got, err := svc.GetBlog(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "long", got.Content)
}

func TestCreateBlogRequiresText(t *testing.T) {
	_, err := NewService(&memoryStore{}).CreateBlog(context.Background(), CreateBlogRequest{Title: "x", Excerpt: "y"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Title, excerpt, and content are required", apperr.MessageOf(err, ""))
}

func TestGetBlogNotFound(t *testing.T) {
	svc := NewService(&memoryStore{})

	_, err := svc.GetBlog(context.Background(), 42)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Blog post not found", apperr.MessageOf(err, ""))

	_, err = svc.GetBlog(context.Background(), 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGetAllBlogsEmpty(t *testing.T) {
	blogs, err := NewService(&memoryStore{}).GetAllBlogs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, blogs)
	assert.Empty(t, blogs)
}
