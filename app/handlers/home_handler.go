package handlers

import (
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const (
	homeFeaturedLimit = 6
	homePostsLimit    = 3
)

type HomeHandler struct {
	render  *render.Render
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewHomeHandler(r *render.Render, catalog *services.CatalogService, log *zap.Logger) *HomeHandler {
	return &HomeHandler{
		render:  r,
		catalog: catalog,
		log:     log,
	}
}

func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load categories", err)
		return
	}

	featured, err := h.catalog.FeaturedProducts(r.Context(), homeFeaturedLimit)
	if err != nil {
		h.serverError(w, r, "failed to load featured products", err)
		return
	}

	blog, err := h.catalog.BlogListing(r.Context())
	if err != nil {
		h.serverError(w, r, "failed to load blog posts", err)
		return
	}
	var posts []models.BlogPost
	if blog.Featured != nil {
		posts = append(posts, *blog.Featured)
	}
	posts = append(posts, blog.Recent...)
	if len(posts) > homePostsLimit {
		posts = posts[:homePostsLimit]
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Categories": categories,
		"Featured":   featured,
		"Posts":      posts,
	})
	_ = h.render.HTML(w, http.StatusOK, "home", data)
}

// Static returns a handler for a page that needs no queries beyond the
// shared site settings.
func (h *HomeHandler) Static(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := helpers.GetBaseData(r, map[string]interface{}{
			"Title": title,
			"Breadcrumbs": []breadcrumb.Breadcrumb{
				{Name: "Home", URL: "/"},
				{Name: title, URL: r.URL.Path},
			},
		})
		_ = h.render.HTML(w, http.StatusOK, name, data)
	}
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Page Not Found"})
	_ = h.render.HTML(w, http.StatusNotFound, "errors/404", data)
}

func (h *HomeHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	renderServerError(h.render, h.log, w, r, msg, err)
}

func renderServerError(rnd *render.Render, log *zap.Logger, w http.ResponseWriter, r *http.Request, msg string, err error) {
	log.Error(msg, zap.String("path", r.URL.Path), zap.Error(err))
	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Something Went Wrong"})
	_ = rnd.HTML(w, http.StatusInternalServerError, "errors/500", data)
}
