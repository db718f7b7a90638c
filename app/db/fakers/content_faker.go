package fakers

import (
	"math/rand"
	"time"

	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
)

func PostFaker(n int, now time.Time) *models.BlogPost {
	title := faker.Sentence()
	excerpt := faker.Sentence()
	content := faker.Paragraph() + "\n\n" + faker.Paragraph()
	return &models.BlogPost{
		Title:       title,
		Slug:        slug.Make(title),
		Excerpt:     &excerpt,
		Content:     &content,
		Author:      models.DefaultAuthor,
		PublishDate: now.AddDate(0, 0, -7*n),
		IsPublished: true,
	}
}

func LeadFaker() *models.Lead {
	phone := faker.Phonenumber()
	message := faker.Sentence()
	source := "/contact"
	return &models.Lead{
		Name:        faker.Name(),
		Email:       faker.Email(),
		Phone:       &phone,
		InquiryType: "Request for Quote",
		SourcePage:  &source,
		Message:     &message,
		Status:      models.LeadStatuses[rand.Intn(len(models.LeadStatuses))],
	}
}

func BookingFaker(now time.Time) *models.BookingRequest {
	date := now.AddDate(0, 0, 1+rand.Intn(14)).Format("2006-01-02")
	slot := "10:00 AM - 11:00 AM"
	topic := "Product Selection Assistance"
	return &models.BookingRequest{
		Name:          faker.Name(),
		Email:         faker.Email(),
		PreferredDate: &date,
		PreferredTime: &slot,
		Topic:         &topic,
		Status:        models.BookingStatuses[rand.Intn(len(models.BookingStatuses))],
	}
}

// SettingsFaker returns a value for every editable site setting.
func SettingsFaker() []models.SiteSetting {
	values := map[string]string{
		"company_name":    "General Equipments",
		"company_tagline": "Industrial equipment, supplied and supported.",
		"company_phone":   "+1 555 0100",
		"company_email":   "sales@example.com",
		"company_address": "100 Industrial Way",
	}
	out := make([]models.SiteSetting, 0, len(models.SettingKeys))
	for _, key := range models.SettingKeys {
		s := models.SiteSetting{Key: key}
		if v, ok := values[key]; ok {
			v := v
			s.Value = &v
		}
		out = append(out, s)
	}
	return out
}
