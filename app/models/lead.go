package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusClosed    = "closed"

	InquiryTypeGeneral        = "general"
	InquiryTypeProductInquiry = "product_inquiry"
)

// LeadStatuses lists every lead status in display order. Any status may move
// to any other.
var LeadStatuses = []string{LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusClosed}

type Lead struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" csv:"id"`
	Name        string    `gorm:"size:255;not null" json:"name" csv:"name"`
	Email       string    `gorm:"size:255;not null;index" json:"email" csv:"email"`
	Phone       *string   `gorm:"size:50" json:"phone" csv:"phone"`
	Company     *string   `gorm:"size:255" json:"company" csv:"company"`
	InquiryType string    `gorm:"size:50;not null" json:"inquiry_type" csv:"inquiry_type"`
	SourcePage  *string   `gorm:"size:500" json:"source_page" csv:"source_page"`
	Message     *string   `gorm:"type:text" json:"message" csv:"message"`
	ProductID   *string   `gorm:"size:36;index" json:"product_id" csv:"product_id"`
	Status      string    `gorm:"size:20;not null;index" json:"status" csv:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at" csv:"created_at"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if l.InquiryType == "" {
		l.InquiryType = InquiryTypeGeneral
	}
	return nil
}

func IsLeadStatus(s string) bool {
	for _, v := range LeadStatuses {
		if v == s {
			return true
		}
	}
	return false
}
