package migrations

import (
	"github.com/Rakhulsr/general-equipments/app/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the application, parents first.
func Models() []interface{} {
	return []interface{}{
		&models.ProductCategory{},
		&models.Product{},
		&models.BlogPost{},
		&models.Lead{},
		&models.BookingRequest{},
		&models.SiteSetting{},
		&models.AdminUser{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
