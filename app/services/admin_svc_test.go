package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdmin(r *repos) *AdminService {
	return NewAdminService(r.products, r.posts, r.leads, r.bookings, r.settings, nopLogger())
}

func TestAdmin_UpdateLeadStatus(t *testing.T) {
	r := newRepos(t)
	svc := newAdmin(r)
	ctx := context.Background()

	lead := &models.Lead{Name: "Ana", Email: "ana@example.com", InquiryType: models.InquiryTypeGeneral, Status: models.LeadStatusNew}
	require.NoError(t, r.leads.Create(ctx, lead))

	// Any defined status may follow any other, including going backwards.
	for _, status := range []string{models.LeadStatusClosed, models.LeadStatusNew, models.LeadStatusQualified} {
		require.NoError(t, svc.UpdateLeadStatus(ctx, lead.ID, status))
		got, err := svc.Lead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	err := svc.UpdateLeadStatus(ctx, lead.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	got, err := svc.Lead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusQualified, got.Status)

	// Re-saving the current status is a no-op update, not a missing row.
	require.NoError(t, svc.UpdateLeadStatus(ctx, lead.ID, models.LeadStatusQualified))
	got, err = svc.Lead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusQualified, got.Status)

	assert.ErrorIs(t, svc.UpdateLeadStatus(ctx, "missing", models.LeadStatusClosed), ErrNotFound)
	_, err = svc.Lead(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdmin_UpdateBookingStatus(t *testing.T) {
	r := newRepos(t)
	svc := newAdmin(r)
	ctx := context.Background()

	booking := &models.BookingRequest{Name: "Bo", Email: "bo@example.com", Status: models.BookingStatusPending}
	require.NoError(t, r.bookings.Create(ctx, booking))

	require.NoError(t, svc.UpdateBookingStatus(ctx, booking.ID, models.BookingStatusCancelled))
	require.NoError(t, svc.UpdateBookingStatus(ctx, booking.ID, models.BookingStatusPending))
	require.NoError(t, svc.UpdateBookingStatus(ctx, booking.ID, models.BookingStatusPending))
	got, err := svc.Booking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, got.Status)
	assert.ErrorIs(t, svc.UpdateBookingStatus(ctx, booking.ID, "done"), ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateBookingStatus(ctx, "missing", models.BookingStatusConfirmed), ErrNotFound)
}

func TestAdmin_LeadsFilter(t *testing.T) {
	r := newRepos(t)
	svc := newAdmin(r)
	ctx := context.Background()

	for _, l := range []*models.Lead{
		{Name: "Ana", Email: "ana@example.com", Company: strPtr("Acme Mining"), InquiryType: "general", Status: models.LeadStatusNew},
		{Name: "Ben", Email: "ben@example.com", InquiryType: "general", Status: models.LeadStatusClosed},
		{Name: "Cy", Email: "cy@acme.io", InquiryType: "general", Status: models.LeadStatusNew},
	} {
		require.NoError(t, r.leads.Create(ctx, l))
	}

	all, err := svc.Leads(ctx, repositories.InboxFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	acme, err := svc.Leads(ctx, repositories.InboxFilter{Search: "ACME"})
	require.NoError(t, err)
	assert.Len(t, acme, 2)

	closed, err := svc.Leads(ctx, repositories.InboxFilter{Status: models.LeadStatusClosed})
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "Ben", closed[0].Name)

	unknown, err := svc.Leads(ctx, repositories.InboxFilter{Status: "bogus"})
	require.NoError(t, err)
	assert.Len(t, unknown, 3)
}

func TestAdmin_Settings(t *testing.T) {
	r := newRepos(t)
	svc := newAdmin(r)
	ctx := context.Background()

	values, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.Len(t, values, len(models.SettingKeys))
	assert.Equal(t, "", values["company_name"])

	require.NoError(t, svc.SaveSettings(ctx, map[string]string{
		"company_name":  "Acme Equipment",
		"company_phone": "+1 555 0100",
		"not_a_setting": "ignored",
	}))
	require.NoError(t, svc.SaveSettings(ctx, map[string]string{
		"company_name":  "Acme Equipment Co",
		"company_phone": "",
	}))

	values, err = svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Equipment Co", values["company_name"])
	assert.Equal(t, "", values["company_phone"])
	assert.NotContains(t, values, "not_a_setting")

	rows, err := r.settings.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, len(models.SettingKeys))
	for _, row := range rows {
		if row.Key == "company_phone" {
			assert.Nil(t, row.Value)
		}
	}

	public, err := newCatalog(r, time.Now()).SiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"company_name": "Acme Equipment Co"}, public)
}

func TestAdmin_SettingsRollback(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	rows := []models.SiteSetting{
		{Key: "company_name", Value: strPtr("Before")},
	}
	require.NoError(t, r.settings.UpsertAll(ctx, rows))

	// The trigger fails the second row, so the first write must be rolled
	// back with it.
	require.NoError(t, r.db.Exec(`CREATE TRIGGER reject_tagline BEFORE INSERT ON site_settings
		WHEN NEW."key" = 'company_tagline'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`).Error)
	err := r.settings.UpsertAll(ctx, []models.SiteSetting{
		{Key: "company_name", Value: strPtr("After")},
		{Key: "company_tagline", Value: strPtr("Tagline")},
	})
	require.Error(t, err)

	stored, err := r.settings.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Before", *stored[0].Value)
}

func TestAdmin_Dashboard(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	seedProduct(t, r, "Pump", nil, true)
	for i := 0; i < 7; i++ {
		require.NoError(t, r.leads.Create(ctx, &models.Lead{Name: "L", Email: "l@example.com", InquiryType: "general", Status: models.LeadStatusNew}))
	}

	summary, err := newAdmin(r).Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.TotalProducts)
	assert.EqualValues(t, 7, summary.TotalLeads)
	assert.EqualValues(t, 0, summary.TotalBookings)
	assert.Len(t, summary.RecentLeads, 5)
	assert.Empty(t, summary.RecentBookings)
}
