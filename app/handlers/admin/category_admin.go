package admin

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"go.uber.org/zap"
)

var categoriesCrumb = breadcrumb.Breadcrumb{Name: "Categories", URL: "/admin/categories"}

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminCategoryPageData{}
	data.Title = "Categories"
	data.Breadcrumbs = breadcrumb.Admin(categoriesCrumb)
	h.populateBaseDataForAdmin(r, data)

	categories, err := h.content.AllCategories(r.Context())
	if err != nil {
		h.log.Error("failed to list categories", zap.Error(err))
		data.Message = "Could not load categories."
		data.MessageStatus = "error"
	}
	data.Categories = categories

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}

func (h *AdminHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	h.renderCategoryForm(w, r, &services.CategoryInput{IsActive: true, DisplayOrder: "0"}, "", nil)
}

func (h *AdminHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseCategoryForm(w, r, "/admin/categories/new")
	if !ok {
		return
	}

	if _, err := h.content.CreateCategory(r.Context(), *form); err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			h.renderCategoryForm(w, r, form, "", validationErr.Fields)
			return
		}
		h.fail(w, r, "/admin/categories/new", "Could not create category.", err)
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/categories", "success", "Category created.")
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	category, err := h.content.Category(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/categories", "error", "Category not found.")
			return
		}
		h.fail(w, r, "/admin/categories", "Could not load category.", err)
		return
	}

	form := services.CategoryInputFrom(category)
	h.renderCategoryForm(w, r, &form, category.ID, nil)
}

func (h *AdminHandler) EditCategoryPost(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	form, ok := h.parseCategoryForm(w, r, "/admin/categories/"+id+"/edit")
	if !ok {
		return
	}

	if _, err := h.content.UpdateCategory(r.Context(), id, *form); err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderCategoryForm(w, r, form, id, validationErr.Fields)
		case errors.Is(err, services.ErrNotFound):
			helpers.RedirectWithMessage(w, r, "/admin/categories", "error", "Category not found.")
		default:
			h.fail(w, r, "/admin/categories/"+id+"/edit", "Could not update category.", err)
		}
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/categories", "success", "Category updated.")
}

func (h *AdminHandler) DeleteCategoryPage(w http.ResponseWriter, r *http.Request) {
	category, err := h.content.Category(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/categories", "error", "Category not found.")
			return
		}
		h.fail(w, r, "/admin/categories", "Could not load category.", err)
		return
	}
	h.confirmDelete(w, r, "Category", category.Name, "/admin/categories")
}

func (h *AdminHandler) DeleteCategoryPost(w http.ResponseWriter, r *http.Request) {
	if !deleteConfirmed(w, r) {
		return
	}

	err := h.content.DeleteCategory(r.Context(), idParam(r))
	switch {
	case err == nil:
		helpers.RedirectWithMessage(w, r, "/admin/categories", "success", "Category deleted.")
	case errors.Is(err, services.ErrNotFound):
		helpers.RedirectWithMessage(w, r, "/admin/categories", "error", "Category not found.")
	case errors.Is(err, services.ErrInUse):
		helpers.RedirectWithMessage(w, r, "/admin/categories", "error", "Category still has subcategories or products. Move them first.")
	default:
		h.fail(w, r, "/admin/categories", "Could not delete category.", err)
	}
}

func (h *AdminHandler) parseCategoryForm(w http.ResponseWriter, r *http.Request, back string) (*services.CategoryInput, bool) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, back, "Could not read the form.", err)
		return nil, false
	}
	return &services.CategoryInput{
		Name:         r.PostFormValue("name"),
		Slug:         r.PostFormValue("slug"),
		Description:  r.PostFormValue("description"),
		ImageURL:     r.PostFormValue("image_url"),
		DisplayOrder: r.PostFormValue("display_order"),
		ParentID:     r.PostFormValue("parent_id"),
		IsActive:     helpers.FormBool(r.PostFormValue("is_active")),
	}, true
}

func (h *AdminHandler) renderCategoryForm(w http.ResponseWriter, r *http.Request, form *services.CategoryInput, id string, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	data := &AdminCategoryPageData{
		CategoryData: form,
		IsEdit:       id != "",
		FormAction:   "/admin/categories",
		Errors:       errs,
	}
	if data.IsEdit {
		data.Title = "Edit Category"
		data.FormAction = "/admin/categories/" + id + "/edit"
		data.Breadcrumbs = breadcrumb.Admin(categoriesCrumb, breadcrumb.Breadcrumb{Name: "Edit", URL: data.FormAction})
	} else {
		data.Title = "New Category"
		data.Breadcrumbs = breadcrumb.Admin(categoriesCrumb, breadcrumb.Breadcrumb{Name: "New", URL: "/admin/categories/new"})
	}
	h.populateBaseDataForAdmin(r, data)

	parents, err := h.content.ParentCandidates(r.Context(), id)
	if err != nil {
		h.log.Error("failed to load parent categories", zap.Error(err))
		data.Message = "Could not load parent categories."
		data.MessageStatus = "error"
	}
	data.Parents = parents

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}
