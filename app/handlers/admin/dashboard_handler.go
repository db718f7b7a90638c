package admin

import (
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/models/other"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type AdminHandler struct {
	render  *render.Render
	content *services.ContentService
	admin   *services.AdminService
	log     *zap.Logger
}

func NewAdminHandler(
	render *render.Render,
	content *services.ContentService,
	admin *services.AdminService,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		render:  render,
		content: content,
		admin:   admin,
		log:     log,
	}
}

type AdminPageData struct {
	other.BasePageData
	Summary *services.DashboardSummary
}

type AdminProductPageData struct {
	other.BasePageData
	Products    []models.Product
	Product     *models.Product
	Specs       []models.SpecEntry
	ProductData *services.ProductInput
	Categories  []models.ProductCategory
	IsEdit      bool
	FormAction  string
	Errors      map[string]string
	Search      string
}

type AdminCategoryPageData struct {
	other.BasePageData
	Categories   []models.ProductCategory
	Parents      []models.ProductCategory
	CategoryData *services.CategoryInput
	IsEdit       bool
	FormAction   string
	Errors       map[string]string
}

type AdminBlogPageData struct {
	other.BasePageData
	Posts      []models.BlogPost
	Post       *models.BlogPost
	PostData   *services.PostInput
	IsEdit     bool
	FormAction string
	Errors     map[string]string
	Search     string
}

type AdminLeadPageData struct {
	other.BasePageData
	Leads    []models.Lead
	Lead     *models.Lead
	Statuses []string
	Search   string
	Status   string
}

type AdminBookingPageData struct {
	other.BasePageData
	Bookings []models.BookingRequest
	Booking  *models.BookingRequest
	Statuses []string
	Search   string
	Status   string
}

type AdminSettingsPageData struct {
	other.BasePageData
	Keys   []string
	Values map[string]string
}

type ConfirmDeletePageData struct {
	other.BasePageData
	Kind      string
	Name      string
	Action    string
	CancelURL string
}

type basePage interface {
	Base() *other.BasePageData
}

func (h *AdminHandler) populateBaseDataForAdmin(r *http.Request, pageData basePage) {
	base := pageData.Base()
	helpers.PopulateBaseData(r, base)
	base.IsAdminPage = true
}

func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, path, msg string, err error) {
	h.log.Error(msg, zap.String("path", r.URL.Path), zap.Error(err))
	helpers.RedirectWithMessage(w, r, path, "error", msg)
}

func (h *AdminHandler) RedirectToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data := &AdminPageData{}
	data.Title = "Dashboard"
	data.Breadcrumbs = breadcrumb.Admin(breadcrumb.Breadcrumb{Name: "Dashboard", URL: "/admin/dashboard"})
	h.populateBaseDataForAdmin(r, data)

	summary, err := h.admin.Dashboard(r.Context())
	if err != nil {
		h.log.Error("failed to load dashboard", zap.Error(err))
		data.Message = "Could not load dashboard figures."
		data.MessageStatus = "error"
		summary = &services.DashboardSummary{}
	}
	data.Summary = summary

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}

// confirmDelete renders the shared confirmation page for a destructive
// action.
func (h *AdminHandler) confirmDelete(w http.ResponseWriter, r *http.Request, kind, name, listURL string) {
	data := &ConfirmDeletePageData{
		Kind:      kind,
		Name:      name,
		Action:    r.URL.Path,
		CancelURL: listURL,
	}
	data.Title = "Delete " + kind
	data.Breadcrumbs = breadcrumb.Admin(breadcrumb.Breadcrumb{Name: "Delete " + kind, URL: r.URL.Path})
	h.populateBaseDataForAdmin(r, data)

	_ = h.render.HTML(w, http.StatusOK, "admin/confirm_delete", data)
}

// deleteConfirmed sends unconfirmed delete posts back to the confirmation
// page.
func deleteConfirmed(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err == nil && r.PostFormValue("confirm") == "yes" {
		return true
	}
	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
	return false
}

func idParam(r *http.Request) string {
	return mux.Vars(r)["id"]
}
