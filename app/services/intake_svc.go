package services

import (
	"context"
	"time"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const mirrorTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type LeadSubmission struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Email       string  `json:"email" validate:"required,leademail,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	Company     *string `json:"company" validate:"omitempty,max=255"`
	InquiryType *string `json:"inquiry_type" validate:"omitempty,max=50"`
	SourcePage  *string `json:"source_page" validate:"omitempty,max=500"`
	Message     *string `json:"message"`
	ProductID   *string `json:"product_id" validate:"omitempty,max=36"`
}

type BookingSubmission struct {
	Name          string  `json:"name" validate:"required,notblank,max=255"`
	Email         string  `json:"email" validate:"required,leademail,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Company       *string `json:"company" validate:"omitempty,max=255"`
	PreferredDate *string `json:"preferred_date" validate:"omitempty,max=20"`
	PreferredTime *string `json:"preferred_time" validate:"omitempty,max=50"`
	Topic         *string `json:"topic" validate:"omitempty,max=255"`
	Message       *string `json:"message"`
}

// IntakeService validates and stores inbound leads and booking requests.
// Submissions are not deduplicated.
type IntakeService struct {
	leads    repositories.LeadRepositoryImpl
	bookings repositories.BookingRepositoryImpl
	mirror   Mirror
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

// NewIntakeService wires the service. mirror may be nil.
func NewIntakeService(
	leads repositories.LeadRepositoryImpl,
	bookings repositories.BookingRepositoryImpl,
	mirror Mirror,
	validate *validator.Validate,
	log *zap.Logger,
) *IntakeService {
	return &IntakeService{
		leads:    leads,
		bookings: bookings,
		mirror:   mirror,
		validate: validate,
		log:      log,
		now:      time.Now,
	}
}

func (s *IntakeService) check(v interface{}) error {
	fields, err := helpers.ValidateStruct(s.validate, v)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *IntakeService) SubmitLead(ctx context.Context, in LeadSubmission) (*models.Lead, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}

	lead := &models.Lead{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       helpers.NormalizeOptional(in.Phone),
		Company:     helpers.NormalizeOptional(in.Company),
		InquiryType: models.InquiryTypeGeneral,
		SourcePage:  helpers.NormalizeOptional(in.SourcePage),
		Message:     helpers.NormalizeOptional(in.Message),
		ProductID:   helpers.NormalizeOptional(in.ProductID),
		Status:      models.LeadStatusNew,
	}
	if t := helpers.NormalizeOptional(in.InquiryType); t != nil {
		lead.InquiryType = *t
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		s.log.Error("failed to store lead", zap.String("email", lead.Email), zap.Error(err))
		return nil, &PersistenceError{Entity: "lead", Err: err}
	}
	s.log.Info("lead stored", zap.String("id", lead.ID), zap.String("inquiry_type", lead.InquiryType))

	s.forward(ctx, map[string]string{
		"timestamp":    s.now().UTC().Format(mirrorTimestampLayout),
		"name":         lead.Name,
		"email":        lead.Email,
		"phone":        helpers.Deref(lead.Phone),
		"company":      helpers.Deref(lead.Company),
		"inquiry_type": lead.InquiryType,
		"source_page":  helpers.Deref(lead.SourcePage),
		"message":      helpers.Deref(lead.Message),
		"product_id":   helpers.Deref(lead.ProductID),
	})

	return lead, nil
}

func (s *IntakeService) SubmitBooking(ctx context.Context, in BookingSubmission) (*models.BookingRequest, error) {
	if err := s.check(&in); err != nil {
		return nil, err
	}

	booking := &models.BookingRequest{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         helpers.NormalizeOptional(in.Phone),
		Company:       helpers.NormalizeOptional(in.Company),
		PreferredDate: helpers.NormalizeOptional(in.PreferredDate),
		PreferredTime: helpers.NormalizeOptional(in.PreferredTime),
		Topic:         helpers.NormalizeOptional(in.Topic),
		Message:       helpers.NormalizeOptional(in.Message),
		Status:        models.BookingStatusPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.log.Error("failed to store booking request", zap.String("email", booking.Email), zap.Error(err))
		return nil, &PersistenceError{Entity: "booking request", Err: err}
	}
	s.log.Info("booking request stored", zap.String("id", booking.ID))

	s.forward(ctx, map[string]string{
		"timestamp":      s.now().UTC().Format(mirrorTimestampLayout),
		"type":           "booking",
		"name":           booking.Name,
		"email":          booking.Email,
		"phone":          helpers.Deref(booking.Phone),
		"company":        helpers.Deref(booking.Company),
		"preferred_date": helpers.Deref(booking.PreferredDate),
		"preferred_time": helpers.Deref(booking.PreferredTime),
		"topic":          helpers.Deref(booking.Topic),
		"message":        helpers.Deref(booking.Message),
	})

	return booking, nil
}

// forward never fails the submission; the row is already committed.
func (s *IntakeService) forward(ctx context.Context, record map[string]string) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Forward(ctx, record); err != nil {
		s.log.Warn("failed to mirror submission", zap.Error(err))
	}
}
