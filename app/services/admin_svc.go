package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dashboardRecentLimit = 5

type DashboardSummary struct {
	TotalProducts  int64
	TotalPosts     int64
	TotalLeads     int64
	TotalBookings  int64
	RecentLeads    []models.Lead
	RecentBookings []models.BookingRequest
}

// AdminService backs the dashboard, the lead and booking inboxes and the
// settings page.
type AdminService struct {
	products repositories.ProductRepositoryImpl
	posts    repositories.BlogRepositoryImpl
	leads    repositories.LeadRepositoryImpl
	bookings repositories.BookingRepositoryImpl
	settings repositories.SettingRepositoryImpl
	log      *zap.Logger
}

func NewAdminService(
	products repositories.ProductRepositoryImpl,
	posts repositories.BlogRepositoryImpl,
	leads repositories.LeadRepositoryImpl,
	bookings repositories.BookingRepositoryImpl,
	settings repositories.SettingRepositoryImpl,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		products: products,
		posts:    posts,
		leads:    leads,
		bookings: bookings,
		settings: settings,
		log:      log,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var (
		summary DashboardSummary
		err     error
	)
	if summary.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if summary.TotalPosts, err = s.posts.Count(ctx); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	if summary.TotalLeads, err = s.leads.Count(ctx); err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	if summary.TotalBookings, err = s.bookings.Count(ctx); err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	if summary.RecentLeads, err = s.leads.Recent(ctx, dashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("recent leads: %w", err)
	}
	if summary.RecentBookings, err = s.bookings.Recent(ctx, dashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	return &summary, nil
}

// Leads

func (s *AdminService) Leads(ctx context.Context, filter repositories.InboxFilter) ([]models.Lead, error) {
	if filter.Status != "" && !models.IsLeadStatus(filter.Status) {
		filter.Status = ""
	}
	return s.leads.List(ctx, filter)
}

func (s *AdminService) Lead(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	return lead, nil
}

// UpdateLeadStatus overwrites the status. Any defined status may follow any
// other.
func (s *AdminService) UpdateLeadStatus(ctx context.Context, id, status string) error {
	if !models.IsLeadStatus(status) {
		return fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	if err := s.leads.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info("lead status updated", zap.String("id", id), zap.String("status", status))
	return nil
}

// Bookings

func (s *AdminService) Bookings(ctx context.Context, filter repositories.InboxFilter) ([]models.BookingRequest, error) {
	if filter.Status != "" && !models.IsBookingStatus(filter.Status) {
		filter.Status = ""
	}
	return s.bookings.List(ctx, filter)
}

func (s *AdminService) Booking(ctx context.Context, id string) (*models.BookingRequest, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	return booking, nil
}

func (s *AdminService) UpdateBookingStatus(ctx context.Context, id, status string) error {
	if !models.IsBookingStatus(status) {
		return fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info("booking status updated", zap.String("id", id), zap.String("status", status))
	return nil
}

// Settings

// Settings returns a value for every editable key, empty when unset.
func (s *AdminService) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := s.settings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(models.SettingKeys))
	for _, key := range models.SettingKeys {
		out[key] = ""
	}
	for _, row := range rows {
		if row.Value != nil {
			out[row.Key] = *row.Value
		}
	}
	return out, nil
}

// SaveSettings writes every editable key in one transaction. Keys missing
// from values and blank values are stored as NULL; unknown keys are ignored.
func (s *AdminService) SaveSettings(ctx context.Context, values map[string]string) error {
	rows := make([]models.SiteSetting, 0, len(models.SettingKeys))
	for _, key := range models.SettingKeys {
		rows = append(rows, models.SiteSetting{
			Key:   key,
			Value: helpers.OptionalString(values[key]),
		})
	}
	if err := s.settings.UpsertAll(ctx, rows); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.log.Info("site settings saved", zap.Int("keys", len(rows)))
	return nil
}
