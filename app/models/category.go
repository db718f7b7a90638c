package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductCategory struct {
	ID           string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name         string           `gorm:"size:150;not null" json:"name"`
	Slug         string           `gorm:"size:150;not null;uniqueIndex" json:"slug"`
	Description  *string          `gorm:"type:text" json:"description"`
	ImageURL     *string          `gorm:"size:500" json:"image_url"`
	DisplayOrder int              `gorm:"not null;index" json:"display_order"`
	ParentID     *string          `gorm:"size:36;index" json:"parent_id"`
	Parent       *ProductCategory `gorm:"foreignKey:ParentID" json:"-"`
	IsActive     bool             `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (ProductCategory) TableName() string { return "product_categories" }

func (c *ProductCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// IsTopLevel reports whether the category has no parent.
func (c *ProductCategory) IsTopLevel() bool {
	return c.ParentID == nil || *c.ParentID == ""
}
