package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type BlogHandler struct {
	render  *render.Render
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewBlogHandler(r *render.Render, catalog *services.CatalogService, log *zap.Logger) *BlogHandler {
	return &BlogHandler{render: r, catalog: catalog, log: log}
}

func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	listing, err := h.catalog.BlogListing(r.Context())
	if err != nil {
		renderServerError(h.render, h.log, w, r, "failed to load blog", err)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":    "Blog",
		"Featured": listing.Featured,
		"Recent":   listing.Recent,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Blog", URL: "/blog"},
		},
	})
	_ = h.render.HTML(w, http.StatusOK, "blog", data)
}

func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	post, err := h.catalog.PostBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Redirect(w, r, "/blog", http.StatusSeeOther)
			return
		}
		renderServerError(h.render, h.log, w, r, "failed to load blog post", err)
		return
	}

	related, err := h.catalog.RelatedPosts(r.Context(), post)
	if err != nil {
		h.log.Warn("failed to load related posts", zap.String("post_id", post.ID), zap.Error(err))
		related = nil
	}

	title := post.Title
	if post.MetaTitle != nil && *post.MetaTitle != "" {
		title = *post.MetaTitle
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":           title,
		"MetaDescription": helpers.Deref(post.MetaDescription),
		"Post":            post,
		"Related":         related,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Blog", URL: "/blog"},
			{Name: post.Title, URL: "/blog/" + post.Slug},
		},
	})
	_ = h.render.HTML(w, http.StatusOK, "blog_post", data)
}
