package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPost struct {
	ID              string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Slug            string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Excerpt         *string   `gorm:"type:text" json:"excerpt"`
	Content         *string   `gorm:"type:text" json:"content"`
	FeaturedImage   *string   `gorm:"size:500" json:"featured_image"`
	Author          string    `gorm:"size:150;not null" json:"author"`
	PublishDate     time.Time `gorm:"not null;index" json:"publish_date"`
	IsPublished     bool      `gorm:"not null;index" json:"is_published"`
	MetaTitle       *string   `gorm:"size:255" json:"meta_title"`
	MetaDescription *string   `gorm:"size:500" json:"meta_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }

const DefaultAuthor = "General Equipments Team"

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Author == "" {
		b.Author = DefaultAuthor
	}
	if b.PublishDate.IsZero() {
		b.PublishDate = time.Now()
	}
	return nil
}

// BeforeSave keeps publish dates in UTC so that range comparisons against
// "now" behave the same on every driver.
func (b *BlogPost) BeforeSave(tx *gorm.DB) error {
	b.PublishDate = b.PublishDate.UTC()
	return nil
}

// VisibleAt reports whether the post is publicly visible at t.
func (b *BlogPost) VisibleAt(t time.Time) bool {
	return b.IsPublished && !b.PublishDate.After(t)
}
