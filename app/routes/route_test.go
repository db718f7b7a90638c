package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/general-equipments/app/configs"
	"github.com/Rakhulsr/general-equipments/app/db/testdb"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/renderer"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type app struct {
	handler http.Handler
	db      *gorm.DB
}

func newApp(t *testing.T) *app {
	t.Helper()
	db := testdb.New(t)
	h := NewRouter(Options{
		DB:     db,
		Render: renderer.New("../../templates", false),
		Logger: zap.NewNop(),
		Keys: &configs.SessionKeys{
			AuthKey: securecookie.GenerateRandomKey(64),
			EncKey:  securecookie.GenerateRandomKey(32),
		},
		Now: time.Now,
	})
	return &app{handler: h, db: db}
}

func (a *app) do(t *testing.T, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestPublicPages(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	category := &models.ProductCategory{Name: "Pumps", Slug: "pumps", IsActive: true}
	require.NoError(t, repositories.NewCategoryRepository(a.db).Create(ctx, category))
	specs, err := models.EncodeSpecifications([]models.SpecEntry{{Key: "flow_rate", Value: "50 m3/h"}})
	require.NoError(t, err)
	product := &models.Product{Name: "CP-50", Slug: "cp-50", CategoryID: &category.ID, Specifications: specs, IsActive: true, IsFeatured: true}
	require.NoError(t, repositories.NewProductRepository(a.db).Create(ctx, product))
	require.NoError(t, repositories.NewSettingRepository(a.db).UpsertAll(ctx, []models.SiteSetting{
		{Key: "company_name", Value: &[]string{"Acme Equipment"}[0]},
	}))

	for _, path := range []string{"/", "/about", "/privacy-policy", "/terms-and-conditions", "/products", "/products/category/pumps", "/products?category=unknown", "/blog", "/contact", "/book-a-call"} {
		rec := a.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Acme Equipment", path)
	}

	rec := a.do(t, http.MethodGet, "/products/cp-50", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flow Rate")
	assert.Contains(t, rec.Body.String(), "50 m3/h")

	rec = a.do(t, http.MethodGet, "/products/nope", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))

	rec = a.do(t, http.MethodGet, "/blog/nope", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blog", rec.Header().Get("Location"))

	rec = a.do(t, http.MethodGet, "/definitely/not/here", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestPublicForms(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	leads := repositories.NewLeadRepository(a.db)
	bookings := repositories.NewBookingRepository(a.db)

	rec := a.do(t, http.MethodPost, "/contact", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message is required.")
	count, err := leads.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	rec = a.do(t, http.MethodPost, "/contact", url.Values{
		"name":         {"Ana"},
		"email":        {"ana@example.com"},
		"inquiry_type": {"Request for Quote"},
		"message":      {"Two compressors please"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for your message")
	stored, err := leads.List(ctx, repositories.InboxFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Request for Quote", stored[0].InquiryType)
	require.NotNil(t, stored[0].SourcePage)
	assert.Equal(t, "/contact", *stored[0].SourcePage)

	rec = a.do(t, http.MethodPost, "/book-a-call", url.Values{"name": {"Bo"}, "email": {"bo@example.com"}, "preferred_time": {"midnight"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please choose one of the listed time slots.")

	rec = a.do(t, http.MethodPost, "/book-a-call", url.Values{"name": {"Bo"}, "email": {"bo@example.com"}, "preferred_time": {"9:00 AM - 10:00 AM"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	count, err = bookings.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubmitEndpoints(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/submit-lead", "/functions/v1/submit-booking"} {
		rec := a.do(t, http.MethodOptions, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Empty(t, rec.Body.String(), path)
	}

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/submit-lead", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestAdminAccess(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	auth := services.NewAuthService(repositories.NewUserRepository(a.db), zap.NewNop())
	_, err := auth.CreateAdmin(ctx, "Ops", "ops@example.com", "long enough")
	require.NoError(t, err)

	rec := a.do(t, http.MethodGet, "/admin/leads", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	rec = a.do(t, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	rec = a.do(t, http.MethodGet, "/admin/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "<!DOCTYPE"))
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "<html"))

	rec = a.do(t, http.MethodPost, "/admin/login", url.Values{"email": {"ops@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "<!DOCTYPE"))

	rec = a.do(t, http.MethodPost, "/admin/login", url.Values{"email": {"ops@example.com"}, "password": {"long enough"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	for _, path := range []string{"/admin/dashboard", "/admin/products", "/admin/products/new", "/admin/categories", "/admin/categories/new", "/admin/blog", "/admin/blog/new", "/admin/leads", "/admin/bookings", "/admin/settings"} {
		rec = a.do(t, http.MethodGet, path, nil, cookies...)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = a.do(t, http.MethodGet, "/admin/login", nil, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = a.do(t, http.MethodPost, "/admin/settings", url.Values{"company_name": {"Acme Equipment"}}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	rec = a.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "Acme Equipment")

	rec = a.do(t, http.MethodGet, "/admin/leads/export", nil, cookies...)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	rec = a.do(t, http.MethodPost, "/admin/logout", url.Values{}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestAdminLeadWorkflow(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	auth := services.NewAuthService(repositories.NewUserRepository(a.db), zap.NewNop())
	_, err := auth.CreateAdmin(ctx, "Ops", "ops@example.com", "long enough")
	require.NoError(t, err)
	rec := a.do(t, http.MethodPost, "/admin/login", url.Values{"email": {"ops@example.com"}, "password": {"long enough"}})
	cookies := rec.Result().Cookies()

	leads := repositories.NewLeadRepository(a.db)
	lead := &models.Lead{Name: "Ana", Email: "ana@example.com", InquiryType: "general", Status: models.LeadStatusNew}
	require.NoError(t, leads.Create(ctx, lead))

	rec = a.do(t, http.MethodGet, "/admin/leads/"+lead.ID, nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")

	rec = a.do(t, http.MethodPost, "/admin/leads/"+lead.ID+"/status", url.Values{
		"status":   {models.LeadStatusClosed},
		"redirect": {"/admin/leads?status_filter=new&status=success&message=old"},
	}, cookies...)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/admin/leads?"), loc)
	assert.Equal(t, 1, strings.Count(loc, "message="), loc)

	got, err := leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusClosed, got.Status)

	rec = a.do(t, http.MethodPost, "/admin/leads/"+lead.ID+"/status", url.Values{"status": {"archived"}}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	got, err = leads.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusClosed, got.Status)
}
