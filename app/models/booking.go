package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

var BookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled}

type BookingRequest struct {
	ID            string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id" csv:"id"`
	Name          string    `gorm:"size:255;not null" json:"name" csv:"name"`
	Email         string    `gorm:"size:255;not null;index" json:"email" csv:"email"`
	Phone         *string   `gorm:"size:50" json:"phone" csv:"phone"`
	Company       *string   `gorm:"size:255" json:"company" csv:"company"`
	PreferredDate *string   `gorm:"size:20" json:"preferred_date" csv:"preferred_date"`
	PreferredTime *string   `gorm:"size:50" json:"preferred_time" csv:"preferred_time"`
	Topic         *string   `gorm:"size:255" json:"topic" csv:"topic"`
	Message       *string   `gorm:"type:text" json:"message" csv:"message"`
	Status        string    `gorm:"size:20;not null;index" json:"status" csv:"status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at" csv:"created_at"`
}

func (BookingRequest) TableName() string { return "booking_requests" }

func (b *BookingRequest) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	return nil
}

func IsBookingStatus(s string) bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}
