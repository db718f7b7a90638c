package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ProductHandler struct {
	render    *render.Render
	catalog   *services.CatalogService
	intake    *services.IntakeService
	validator *validator.Validate
	log       *zap.Logger
}

func NewProductHandler(r *render.Render, catalog *services.CatalogService, intake *services.IntakeService, v *validator.Validate, log *zap.Logger) *ProductHandler {
	return &ProductHandler{render: r, catalog: catalog, intake: intake, validator: v, log: log}
}

// InquiryForm is the lead form on a product page. The message is optional
// there.
type InquiryForm struct {
	Name    string `form:"name" validate:"required,notblank"`
	Email   string `form:"email" validate:"required,leademail"`
	Phone   string `form:"phone"`
	Company string `form:"company"`
	Message string `form:"message"`
}

type inquiryState struct {
	Form      InquiryForm
	Errors    map[string]string
	FormError string
	Submitted bool
}

// Products lists active products, optionally scoped to the category slug in
// the path or the "category" query parameter.
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		slug = r.URL.Query().Get("category")
	}

	listing, err := h.catalog.Products(r.Context(), slug)
	if err != nil {
		renderServerError(h.render, h.log, w, r, "failed to load products", err)
		return
	}

	title := "Products"
	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Products", URL: "/products"},
	}
	if listing.Current != nil {
		title = listing.Current.Name
		breadcrumbs = append(breadcrumbs, breadcrumb.Breadcrumb{
			Name: listing.Current.Name,
			URL:  "/products/category/" + listing.Current.Slug,
		})
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":           title,
		"Products":        listing.Products,
		"Categories":      listing.Categories,
		"CurrentCategory": listing.Current,
		"Breadcrumbs":     breadcrumbs,
	})
	_ = h.render.HTML(w, http.StatusOK, "products", data)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}
	h.renderDetail(w, r, product, &inquiryState{Errors: map[string]string{}})
}

// ProductInquiry records a product inquiry lead and re-renders the product
// page with the outcome.
func (h *ProductHandler) ProductInquiry(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	state := &inquiryState{Errors: map[string]string{}}
	if err := r.ParseForm(); err != nil {
		state.FormError = "We could not read your request. Please try again."
		h.renderDetail(w, r, product, state)
		return
	}
	state.Form = InquiryForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Company: r.PostFormValue("company"),
		Message: r.PostFormValue("message"),
	}

	fields, err := helpers.ValidateStruct(h.validator, &state.Form)
	if err != nil {
		renderServerError(h.render, h.log, w, r, "failed to validate inquiry", err)
		return
	}
	if len(fields) > 0 {
		state.Errors = fields
		h.renderDetail(w, r, product, state)
		return
	}

	inquiryType := models.InquiryTypeProductInquiry
	sourcePage := "/products/" + product.Slug
	_, err = h.intake.SubmitLead(r.Context(), services.LeadSubmission{
		Name:        state.Form.Name,
		Email:       state.Form.Email,
		Phone:       helpers.OptionalString(state.Form.Phone),
		Company:     helpers.OptionalString(state.Form.Company),
		InquiryType: &inquiryType,
		SourcePage:  &sourcePage,
		Message:     helpers.OptionalString(state.Form.Message),
		ProductID:   &product.ID,
	})
	if err != nil {
		applySubmitError(err, state.Errors, &state.FormError)
		h.renderDetail(w, r, product, state)
		return
	}

	state.Submitted = true
	state.Form = InquiryForm{}
	h.renderDetail(w, r, product, state)
}

// loadProduct sends visitors back to the listing when the slug does not
// resolve to an active product.
func (h *ProductHandler) loadProduct(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	slug := mux.Vars(r)["slug"]
	product, err := h.catalog.ProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Redirect(w, r, "/products", http.StatusSeeOther)
			return nil, false
		}
		renderServerError(h.render, h.log, w, r, "failed to load product", err)
		return nil, false
	}
	return product, true
}

func (h *ProductHandler) renderDetail(w http.ResponseWriter, r *http.Request, product *models.Product, state *inquiryState) {
	related, err := h.catalog.RelatedProducts(r.Context(), product)
	if err != nil {
		h.log.Warn("failed to load related products", zap.String("product_id", product.ID), zap.Error(err))
		related = nil
	}

	specs, err := product.SpecEntries()
	if err != nil {
		h.log.Warn("ignoring malformed specifications", zap.String("product_id", product.ID), zap.Error(err))
		specs = nil
	}

	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Products", URL: "/products"},
	}
	if product.Category != nil {
		breadcrumbs = append(breadcrumbs, breadcrumb.Breadcrumb{
			Name: product.Category.Name,
			URL:  "/products/category/" + product.Category.Slug,
		})
	}
	breadcrumbs = append(breadcrumbs, breadcrumb.Breadcrumb{Name: product.Name, URL: "/products/" + product.Slug})

	meta := ""
	if product.ShortDescription != nil {
		meta = strings.TrimSpace(*product.ShortDescription)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":           product.Name,
		"MetaDescription": meta,
		"Product":         product,
		"Specs":           specs,
		"Related":         related,
		"Inquiry":         state,
		"Breadcrumbs":     breadcrumbs,
	})
	_ = h.render.HTML(w, http.StatusOK, "product", data)
}

// applySubmitError sorts an intake failure into field errors or the generic
// retry message.
func applySubmitError(err error, fields map[string]string, formError *string) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		for k, v := range validationErr.Fields {
			fields[k] = v
		}
		return
	}
	*formError = "Something went wrong while sending your request. Please try again."
}
