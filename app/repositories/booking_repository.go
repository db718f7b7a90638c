package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/general-equipments/app/models"
	"gorm.io/gorm"
)

type BookingRepositoryImpl interface {
	Create(ctx context.Context, booking *models.BookingRequest) error
	GetByID(ctx context.Context, id string) (*models.BookingRequest, error)
	List(ctx context.Context, filter InboxFilter) ([]models.BookingRequest, error)
	Recent(ctx context.Context, limit int) ([]models.BookingRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Count(ctx context.Context) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepositoryImpl {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.BookingRequest) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.BookingRequest, error) {
	var booking models.BookingRequest
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter InboxFilter) ([]models.BookingRequest, error) {
	var bookings []models.BookingRequest
	q := filter.apply(r.db.WithContext(ctx).Model(&models.BookingRequest{}))
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Recent(ctx context.Context, limit int) ([]models.BookingRequest, error) {
	var bookings []models.BookingRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&bookings).Error
	return bookings, err
}

// UpdateStatus overwrites the status of an existing row. Existence is
// checked up front since MySQL reports changed rather than matched rows.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BookingRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.BookingRequest{}).Where("id = ?", id).Update("status", status).Error
	})
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BookingRequest{}).Count(&count).Error
	return count, err
}
