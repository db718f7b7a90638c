package fakers

import (
	"fmt"
	"math/rand"

	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
)

var demoCategories = []struct {
	Name        string
	Description string
}{
	{"Air Compressors", "Rotary screw and piston compressors for plant air."},
	{"Generators", "Diesel and gas gensets for standby and prime power."},
	{"Pumps", "Centrifugal, submersible and dosing pumps."},
	{"Material Handling", "Forklifts, pallet jacks and hoists."},
}

var demoImages = []string{
	"/static/images/products/equipment-1.jpg",
	"/static/images/products/equipment-2.jpg",
	"/static/images/products/equipment-3.jpg",
}

// CategoryFakers returns the fixed demo category tree roots.
func CategoryFakers() []*models.ProductCategory {
	out := make([]*models.ProductCategory, 0, len(demoCategories))
	for i, c := range demoCategories {
		desc := c.Description
		out = append(out, &models.ProductCategory{
			Name:         c.Name,
			Slug:         slug.Make(c.Name),
			Description:  &desc,
			DisplayOrder: i + 1,
			IsActive:     true,
		})
	}
	return out
}

func ProductFaker(category *models.ProductCategory, n int) *models.Product {
	name := fmt.Sprintf("%s %s %d", faker.Word(), category.Name, 100+n*25)
	short := faker.Sentence()
	full := "## Overview\n\n" + faker.Paragraph() + "\n\n## Applications\n\n- " + faker.Sentence() + "\n- " + faker.Sentence()
	image := demoImages[rand.Intn(len(demoImages))]

	specs, _ := models.EncodeSpecifications([]models.SpecEntry{
		{Key: "Model", Value: fmt.Sprintf("GE-%03d", n)},
		{Key: "Power", Value: fmt.Sprintf("%d kW", 5+rand.Intn(200))},
		{Key: "Weight", Value: fmt.Sprintf("%d kg", 50+rand.Intn(2000))},
		{Key: "Certifications", Value: []any{"CE", "ISO 9001"}},
	})

	categoryID := category.ID
	return &models.Product{
		Name:             name,
		Slug:             slug.Make(name),
		CategoryID:       &categoryID,
		ShortDescription: &short,
		FullDescription:  &full,
		Specifications:   specs,
		FeaturedImage:    &image,
		GalleryImages:    datatypes.JSONSlice[string]{image},
		IsFeatured:       n%3 == 0,
		IsActive:         true,
	}
}
