package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/general-equipments/app/models"
	"gorm.io/gorm"
)

// InboxFilter narrows the lead and booking lists. A zero value lists
// everything.
type InboxFilter struct {
	Search string
	Status string
}

func (f InboxFilter) apply(q *gorm.DB) *gorm.DB {
	if strings.TrimSpace(f.Search) != "" {
		pattern := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern, pattern)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

type LeadRepositoryImpl interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	List(ctx context.Context, filter InboxFilter) ([]models.Lead, error)
	Recent(ctx context.Context, limit int) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Count(ctx context.Context) (int64, error)
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepositoryImpl {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, filter InboxFilter) ([]models.Lead, error) {
	var leads []models.Lead
	q := filter.apply(r.db.WithContext(ctx).Model(&models.Lead{}))
	if err := q.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepository) Recent(ctx context.Context, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&leads).Error
	return leads, err
}

// UpdateStatus overwrites the status of an existing row. Existence is
// checked up front since MySQL reports changed rather than matched rows.
func (r *leadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Lead{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Lead{}).Where("id = ?", id).Update("status", status).Error
	})
}

func (r *leadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lead{}).Count(&count).Error
	return count, err
}
