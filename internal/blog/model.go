package blog

import "time"

// Blog is a published article
type Blog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Excerpt   string    `json:"excerpt" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (Blog) TableName() string {
	return "blogs"
}

// CreateBlogRequest carries the multipart text fields
type CreateBlogRequest struct {
	Title    string
	Excerpt  string
	Content  string
	ImageURL string
}
