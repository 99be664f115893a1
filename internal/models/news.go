package models

import (
	"time"

	"github.com/google/uuid"
)

// News categories
const (
	NewsCategoryClub     = "club"
	NewsCategoryAcademy  = "academy"
	NewsCategoryPartners = "partners"
)

// News is a published article on the club site
type News struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Category  string    `json:"category" db:"category"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	Tags      []string  `json:"tags" db:"tags"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewsInput is the request body for creating or replacing an article
type NewsInput struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required,oneof=club academy partners"`
	ImageURL *string  `json:"image_url"`
	Tags     []string `json:"tags"`
}

// ToNews converts NewsInput to a new News record
func (in *NewsInput) ToNews(now time.Time) *News {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	return &News{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		ImageURL:  in.ImageURL,
		Tags:      tags,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// Apply copies the editable fields onto an existing article
func (in *NewsInput) Apply(n *News, now time.Time) {
	n.Title = in.Title
	n.Content = in.Content
	n.Category = in.Category
	n.ImageURL = in.ImageURL
	n.Tags = in.Tags
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.UpdatedAt = now.UTC()
}
