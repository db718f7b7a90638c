package seeders

import (
	"fmt"
	"time"

	"github.com/Rakhulsr/general-equipments/app/db/fakers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	productsPerCategory = 4
	demoPosts           = 5
	demoLeads           = 12
	demoBookings        = 6
)

type Seeder struct {
	Name   string
	Seeder interface{}
}

// SeedersRegister builds the demo data set. Products need category ids, so
// categories are stored first.
func SeedersRegister(db *gorm.DB, now time.Time) ([]Seeder, error) {
	categories := fakers.CategoryFakers()
	for _, c := range categories {
		if err := db.Where(models.ProductCategory{Slug: c.Slug}).FirstOrCreate(c).Error; err != nil {
			return nil, fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
	}

	var products []*models.Product
	for _, c := range categories {
		for i := 0; i < productsPerCategory; i++ {
			products = append(products, fakers.ProductFaker(c, len(products)+1))
		}
	}

	posts := make([]*models.BlogPost, 0, demoPosts)
	for i := 0; i < demoPosts; i++ {
		posts = append(posts, fakers.PostFaker(i, now))
	}

	leads := make([]*models.Lead, 0, demoLeads)
	for i := 0; i < demoLeads; i++ {
		leads = append(leads, fakers.LeadFaker())
	}

	bookings := make([]*models.BookingRequest, 0, demoBookings)
	for i := 0; i < demoBookings; i++ {
		bookings = append(bookings, fakers.BookingFaker(now))
	}

	settings := fakers.SettingsFaker()

	return []Seeder{
		{Name: "products", Seeder: products},
		{Name: "blog posts", Seeder: posts},
		{Name: "leads", Seeder: leads},
		{Name: "booking requests", Seeder: bookings},
		{Name: "site settings", Seeder: &settings},
	}, nil
}

// DBSeed inserts the demo data. Rows that collide on a unique column are
// skipped so the command can be re-run.
func DBSeed(db *gorm.DB, log *zap.Logger) error {
	seeders, err := SeedersRegister(db, time.Now().UTC())
	if err != nil {
		return err
	}
	for _, seeder := range seeders {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seeder.Seeder)
		if res.Error != nil {
			return fmt.Errorf("seed %s: %w", seeder.Name, res.Error)
		}
		log.Info("seeded", zap.String("table", seeder.Name), zap.Int64("rows", res.RowsAffected))
	}
	return nil
}
