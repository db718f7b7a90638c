package repositories

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/general-equipments/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepositoryImpl interface {
	GetAll(ctx context.Context) ([]models.SiteSetting, error)
	UpsertAll(ctx context.Context, settings []models.SiteSetting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepositoryImpl {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpsertAll writes every setting keyed on its key inside a single
// transaction; either all rows are saved or none are.
func (r *settingRepository) UpsertAll(ctx context.Context, settings []models.SiteSetting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range settings {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&settings[i]).Error
			if err != nil {
				return fmt.Errorf("failed to upsert setting %q: %w", settings[i].Key, err)
			}
		}
		return nil
	})
}
