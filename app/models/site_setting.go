package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteSetting struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Key       string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value     *string   `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SiteSetting) TableName() string { return "site_settings" }

func (s *SiteSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// SettingKeys is the fixed set of keys editable from the admin settings page.
var SettingKeys = []string{
	"company_name",
	"company_tagline",
	"company_phone",
	"company_email",
	"company_address",
	"social_instagram",
	"social_whatsapp",
	"social_twitter",
	"social_linkedin",
	"google_maps_embed",
}

func IsSettingKey(key string) bool {
	for _, k := range SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
