package services

import (
	"fmt"
	"io"

	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/gocarina/gocsv"
)

// WriteLeadsCSV writes leads with a header row using the csv struct tags.
func WriteLeadsCSV(w io.Writer, leads []models.Lead) error {
	if leads == nil {
		leads = []models.Lead{}
	}
	if err := gocsv.Marshal(&leads, w); err != nil {
		return fmt.Errorf("failed to write leads csv: %w", err)
	}
	return nil
}

func WriteBookingsCSV(w io.Writer, bookings []models.BookingRequest) error {
	if bookings == nil {
		bookings = []models.BookingRequest{}
	}
	if err := gocsv.Marshal(&bookings, w); err != nil {
		return fmt.Errorf("failed to write bookings csv: %w", err)
	}
	return nil
}
