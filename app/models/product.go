package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID               string                      `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name             string                      `gorm:"size:255;not null;index" json:"name"`
	Slug             string                      `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	CategoryID       *string                     `gorm:"size:36;index" json:"category_id"`
	Category         *ProductCategory            `gorm:"foreignKey:CategoryID" json:"product_categories"`
	ShortDescription *string                     `gorm:"type:text" json:"short_description"`
	FullDescription  *string                     `gorm:"type:text" json:"full_description"`
	Specifications   datatypes.JSON              `json:"specifications"`
	FeaturedImage    *string                     `gorm:"size:500" json:"featured_image"`
	GalleryImages    datatypes.JSONSlice[string] `json:"gallery_images"`
	IsFeatured       bool                        `gorm:"not null;index" json:"is_featured"`
	IsActive         bool                        `gorm:"not null;index" json:"is_active"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if len(p.Specifications) == 0 {
		p.Specifications = datatypes.JSON("{}")
	}
	if p.GalleryImages == nil {
		p.GalleryImages = datatypes.JSONSlice[string]{}
	}
	return nil
}

// SpecEntry is one row of a product's specification table. Value is either a
// scalar or a list.
type SpecEntry struct {
	Key   string
	Value any
}

// List returns the value as a list of display strings.
func (e SpecEntry) List() []string {
	switch v := e.Value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(v)}
	}
}

func (e SpecEntry) IsList() bool {
	_, ok := e.Value.([]any)
	return ok
}

// SpecEntries decodes the specifications column keeping the key order of the
// stored JSON object.
func (p *Product) SpecEntries() ([]SpecEntry, error) {
	return ParseSpecifications(p.Specifications)
}

func ParseSpecifications(raw []byte) ([]SpecEntry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("specifications: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("specifications: expected object, got %v", tok)
	}

	var entries []SpecEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("specifications: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("specifications: invalid key %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("specifications: value for %q: %w", key, err)
		}
		switch value.(type) {
		case map[string]any:
			return nil, fmt.Errorf("specifications: value for %q must be a scalar or a list", key)
		}
		entries = append(entries, SpecEntry{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("specifications: %w", err)
	}
	return entries, nil
}

// EncodeSpecifications writes entries back as a JSON object in slice order.
func EncodeSpecifications(entries []SpecEntry) (datatypes.JSON, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("specifications: value for %q: %w", e.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return datatypes.JSON(buf.Bytes()), nil
}
