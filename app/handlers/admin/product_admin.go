package admin

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"go.uber.org/zap"
)

var productsCrumb = breadcrumb.Breadcrumb{Name: "Products", URL: "/admin/products"}

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminProductPageData{Search: r.URL.Query().Get("q")}
	data.Title = "Products"
	data.Breadcrumbs = breadcrumb.Admin(productsCrumb)
	h.populateBaseDataForAdmin(r, data)

	products, err := h.content.SearchProducts(r.Context(), data.Search)
	if err != nil {
		h.log.Error("failed to list products", zap.Error(err))
		data.Message = "Could not load products."
		data.MessageStatus = "error"
	}
	data.Products = products

	_ = h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func (h *AdminHandler) GetProductPage(w http.ResponseWriter, r *http.Request) {
	product, err := h.content.Product(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Product not found.")
			return
		}
		h.fail(w, r, "/admin/products", "Could not load product.", err)
		return
	}

	specs, err := product.SpecEntries()
	if err != nil {
		h.log.Warn("ignoring malformed specifications", zap.String("product_id", product.ID), zap.Error(err))
	}

	data := &AdminProductPageData{Product: product, Specs: specs}
	data.Title = product.Name
	data.Breadcrumbs = breadcrumb.Admin(productsCrumb, breadcrumb.Breadcrumb{Name: product.Name, URL: "/admin/products/" + product.ID})
	h.populateBaseDataForAdmin(r, data)

	_ = h.render.HTML(w, http.StatusOK, "admin/products/show", data)
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, &services.ProductInput{IsActive: true}, "", nil)
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseProductForm(w, r, "/admin/products/new")
	if !ok {
		return
	}

	product, err := h.content.CreateProduct(r.Context(), *form)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			h.renderProductForm(w, r, form, "", validationErr.Fields)
			return
		}
		h.fail(w, r, "/admin/products/new", "Could not create product.", err)
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/products/"+product.ID, "success", "Product created.")
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	product, err := h.content.Product(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Product not found.")
			return
		}
		h.fail(w, r, "/admin/products", "Could not load product.", err)
		return
	}

	form := services.ProductInputFrom(product)
	h.renderProductForm(w, r, &form, product.ID, nil)
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	form, ok := h.parseProductForm(w, r, "/admin/products/"+id+"/edit")
	if !ok {
		return
	}

	_, err := h.content.UpdateProduct(r.Context(), id, *form)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderProductForm(w, r, form, id, validationErr.Fields)
		case errors.Is(err, services.ErrNotFound):
			helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Product not found.")
		default:
			h.fail(w, r, "/admin/products/"+id+"/edit", "Could not update product.", err)
		}
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/products/"+id, "success", "Product updated.")
}

func (h *AdminHandler) DeleteProductPage(w http.ResponseWriter, r *http.Request) {
	product, err := h.content.Product(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Product not found.")
			return
		}
		h.fail(w, r, "/admin/products", "Could not load product.", err)
		return
	}
	h.confirmDelete(w, r, "Product", product.Name, "/admin/products")
}

func (h *AdminHandler) DeleteProductPost(w http.ResponseWriter, r *http.Request) {
	if !deleteConfirmed(w, r) {
		return
	}

	if err := h.content.DeleteProduct(r.Context(), idParam(r)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/products", "error", "Product not found.")
			return
		}
		h.fail(w, r, "/admin/products", "Could not delete product.", err)
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/products", "success", "Product deleted.")
}

func (h *AdminHandler) parseProductForm(w http.ResponseWriter, r *http.Request, back string) (*services.ProductInput, bool) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, back, "Could not read the form.", err)
		return nil, false
	}
	return &services.ProductInput{
		Name:             r.PostFormValue("name"),
		Slug:             r.PostFormValue("slug"),
		CategoryID:       r.PostFormValue("category_id"),
		ShortDescription: r.PostFormValue("short_description"),
		FullDescription:  r.PostFormValue("full_description"),
		Specifications:   r.PostFormValue("specifications"),
		FeaturedImage:    r.PostFormValue("featured_image"),
		GalleryImages:    r.PostFormValue("gallery_images"),
		IsFeatured:       helpers.FormBool(r.PostFormValue("is_featured")),
		IsActive:         helpers.FormBool(r.PostFormValue("is_active")),
	}, true
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, form *services.ProductInput, id string, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	data := &AdminProductPageData{
		ProductData: form,
		IsEdit:      id != "",
		FormAction:  "/admin/products",
		Errors:      errs,
	}
	if data.IsEdit {
		data.Title = "Edit Product"
		data.FormAction = "/admin/products/" + id + "/edit"
		data.Breadcrumbs = breadcrumb.Admin(productsCrumb, breadcrumb.Breadcrumb{Name: "Edit", URL: data.FormAction})
	} else {
		data.Title = "New Product"
		data.Breadcrumbs = breadcrumb.Admin(productsCrumb, breadcrumb.Breadcrumb{Name: "New", URL: "/admin/products/new"})
	}
	h.populateBaseDataForAdmin(r, data)

	categories, err := h.content.AllCategories(r.Context())
	if err != nil {
		h.log.Error("failed to load categories for product form", zap.Error(err))
		data.Message = "Could not load categories."
		data.MessageStatus = "error"
	}
	data.Categories = categories

	_ = h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}
