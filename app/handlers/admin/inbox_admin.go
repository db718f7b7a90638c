package admin

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"go.uber.org/zap"
)

var (
	leadsCrumb    = breadcrumb.Breadcrumb{Name: "Leads", URL: "/admin/leads"}
	bookingsCrumb = breadcrumb.Breadcrumb{Name: "Bookings", URL: "/admin/bookings"}
)

func inboxFilter(r *http.Request) repositories.InboxFilter {
	return repositories.InboxFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Status: r.URL.Query().Get("status_filter"),
	}
}

// statusReturnPath keeps the admin on the page that posted the change, as
// long as it is inside the given section.
func statusReturnPath(r *http.Request, section, fallback string) string {
	back := r.PostFormValue("redirect")
	if !strings.HasPrefix(back, section) || strings.HasPrefix(back, "//") {
		return fallback
	}
	u, err := url.Parse(back)
	if err != nil {
		return fallback
	}
	q := u.Query()
	q.Del("status")
	q.Del("message")
	u.RawQuery = q.Encode()
	return u.String()
}

// Leads

func (h *AdminHandler) GetLeadsPage(w http.ResponseWriter, r *http.Request) {
	filter := inboxFilter(r)
	data := &AdminLeadPageData{
		Statuses: models.LeadStatuses,
		Search:   filter.Search,
		Status:   filter.Status,
	}
	data.Title = "Leads"
	data.Breadcrumbs = breadcrumb.Admin(leadsCrumb)
	h.populateBaseDataForAdmin(r, data)

	leads, err := h.admin.Leads(r.Context(), filter)
	if err != nil {
		h.log.Error("failed to list leads", zap.Error(err))
		data.Message = "Could not load leads."
		data.MessageStatus = "error"
	}
	data.Leads = leads

	_ = h.render.HTML(w, http.StatusOK, "admin/leads/index", data)
}

func (h *AdminHandler) GetLeadPage(w http.ResponseWriter, r *http.Request) {
	lead, err := h.admin.Lead(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/leads", "error", "Lead not found.")
			return
		}
		h.fail(w, r, "/admin/leads", "Could not load lead.", err)
		return
	}

	data := &AdminLeadPageData{Lead: lead, Statuses: models.LeadStatuses}
	data.Title = "Lead from " + lead.Name
	data.Breadcrumbs = breadcrumb.Admin(leadsCrumb, breadcrumb.Breadcrumb{Name: lead.Name, URL: "/admin/leads/" + lead.ID})
	h.populateBaseDataForAdmin(r, data)

	_ = h.render.HTML(w, http.StatusOK, "admin/leads/show", data)
}

func (h *AdminHandler) UpdateLeadStatusPost(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "/admin/leads/"+id, "Could not read the form.", err)
		return
	}
	back := statusReturnPath(r, "/admin/leads", "/admin/leads/"+id)

	err := h.admin.UpdateLeadStatus(r.Context(), id, r.PostFormValue("status"))
	switch {
	case err == nil:
		helpers.RedirectWithMessage(w, r, back, "success", "Lead status updated.")
	case errors.Is(err, services.ErrInvalidStatus):
		helpers.RedirectWithMessage(w, r, back, "error", "Unknown lead status.")
	case errors.Is(err, services.ErrNotFound):
		helpers.RedirectWithMessage(w, r, "/admin/leads", "error", "Lead not found.")
	default:
		h.fail(w, r, back, "Could not update lead status.", err)
	}
}

func (h *AdminHandler) ExportLeadsCSV(w http.ResponseWriter, r *http.Request) {
	leads, err := h.admin.Leads(r.Context(), inboxFilter(r))
	if err != nil {
		h.fail(w, r, "/admin/leads", "Could not export leads.", err)
		return
	}

	setCSVHeaders(w, "leads")
	if err := services.WriteLeadsCSV(w, leads); err != nil {
		h.log.Error("failed to write leads csv", zap.Error(err))
	}
}

// Bookings

func (h *AdminHandler) GetBookingsPage(w http.ResponseWriter, r *http.Request) {
	filter := inboxFilter(r)
	data := &AdminBookingPageData{
		Statuses: models.BookingStatuses,
		Search:   filter.Search,
		Status:   filter.Status,
	}
	data.Title = "Bookings"
	data.Breadcrumbs = breadcrumb.Admin(bookingsCrumb)
	h.populateBaseDataForAdmin(r, data)

	bookings, err := h.admin.Bookings(r.Context(), filter)
	if err != nil {
		h.log.Error("failed to list bookings", zap.Error(err))
		data.Message = "Could not load bookings."
		data.MessageStatus = "error"
	}
	data.Bookings = bookings

	_ = h.render.HTML(w, http.StatusOK, "admin/bookings/index", data)
}

func (h *AdminHandler) GetBookingPage(w http.ResponseWriter, r *http.Request) {
	booking, err := h.admin.Booking(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/bookings", "error", "Booking not found.")
			return
		}
		h.fail(w, r, "/admin/bookings", "Could not load booking.", err)
		return
	}

	data := &AdminBookingPageData{Booking: booking, Statuses: models.BookingStatuses}
	data.Title = "Booking from " + booking.Name
	data.Breadcrumbs = breadcrumb.Admin(bookingsCrumb, breadcrumb.Breadcrumb{Name: booking.Name, URL: "/admin/bookings/" + booking.ID})
	h.populateBaseDataForAdmin(r, data)

	_ = h.render.HTML(w, http.StatusOK, "admin/bookings/show", data)
}

func (h *AdminHandler) UpdateBookingStatusPost(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "/admin/bookings/"+id, "Could not read the form.", err)
		return
	}
	back := statusReturnPath(r, "/admin/bookings", "/admin/bookings/"+id)

	err := h.admin.UpdateBookingStatus(r.Context(), id, r.PostFormValue("status"))
	switch {
	case err == nil:
		helpers.RedirectWithMessage(w, r, back, "success", "Booking status updated.")
	case errors.Is(err, services.ErrInvalidStatus):
		helpers.RedirectWithMessage(w, r, back, "error", "Unknown booking status.")
	case errors.Is(err, services.ErrNotFound):
		helpers.RedirectWithMessage(w, r, "/admin/bookings", "error", "Booking not found.")
	default:
		h.fail(w, r, back, "Could not update booking status.", err)
	}
}

func (h *AdminHandler) ExportBookingsCSV(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.admin.Bookings(r.Context(), inboxFilter(r))
	if err != nil {
		h.fail(w, r, "/admin/bookings", "Could not export bookings.", err)
		return
	}

	setCSVHeaders(w, "bookings")
	if err := services.WriteBookingsCSV(w, bookings); err != nil {
		h.log.Error("failed to write bookings csv", zap.Error(err))
	}
}

func setCSVHeaders(w http.ResponseWriter, kind string) {
	filename := fmt.Sprintf("%s-%s.csv", kind, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
