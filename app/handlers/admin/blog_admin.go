package admin

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"go.uber.org/zap"
)

var blogCrumb = breadcrumb.Breadcrumb{Name: "Blog Posts", URL: "/admin/blog"}

func (h *AdminHandler) GetPostsPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminBlogPageData{Search: r.URL.Query().Get("q")}
	data.Title = "Blog Posts"
	data.Breadcrumbs = breadcrumb.Admin(blogCrumb)
	h.populateBaseDataForAdmin(r, data)

	posts, err := h.content.SearchPosts(r.Context(), data.Search)
	if err != nil {
		h.log.Error("failed to list posts", zap.Error(err))
		data.Message = "Could not load blog posts."
		data.MessageStatus = "error"
	}
	data.Posts = posts

	_ = h.render.HTML(w, http.StatusOK, "admin/blog/index", data)
}

func (h *AdminHandler) GetPostPage(w http.ResponseWriter, r *http.Request) {
	post, err := h.content.Post(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/blog", "error", "Blog post not found.")
			return
		}
		h.fail(w, r, "/admin/blog", "Could not load blog post.", err)
		return
	}

	data := &AdminBlogPageData{Post: post}
	data.Title = post.Title
	data.Breadcrumbs = breadcrumb.Admin(blogCrumb, breadcrumb.Breadcrumb{Name: post.Title, URL: "/admin/blog/" + post.ID})
	h.populateBaseDataForAdmin(r, data)

	_ = h.render.HTML(w, http.StatusOK, "admin/blog/show", data)
}

func (h *AdminHandler) AddPostPage(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, &services.PostInput{}, "", nil)
}

func (h *AdminHandler) AddPostPost(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parsePostForm(w, r, "/admin/blog/new")
	if !ok {
		return
	}

	post, err := h.content.CreatePost(r.Context(), *form)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			h.renderPostForm(w, r, form, "", validationErr.Fields)
			return
		}
		h.fail(w, r, "/admin/blog/new", "Could not create blog post.", err)
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/blog/"+post.ID, "success", "Blog post created.")
}

func (h *AdminHandler) EditPostPage(w http.ResponseWriter, r *http.Request) {
	post, err := h.content.Post(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/blog", "error", "Blog post not found.")
			return
		}
		h.fail(w, r, "/admin/blog", "Could not load blog post.", err)
		return
	}

	form := services.PostInputFrom(post)
	h.renderPostForm(w, r, &form, post.ID, nil)
}

func (h *AdminHandler) EditPostPost(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	form, ok := h.parsePostForm(w, r, "/admin/blog/"+id+"/edit")
	if !ok {
		return
	}

	if _, err := h.content.UpdatePost(r.Context(), id, *form); err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderPostForm(w, r, form, id, validationErr.Fields)
		case errors.Is(err, services.ErrNotFound):
			helpers.RedirectWithMessage(w, r, "/admin/blog", "error", "Blog post not found.")
		default:
			h.fail(w, r, "/admin/blog/"+id+"/edit", "Could not update blog post.", err)
		}
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/blog/"+id, "success", "Blog post updated.")
}

func (h *AdminHandler) DeletePostPage(w http.ResponseWriter, r *http.Request) {
	post, err := h.content.Post(r.Context(), idParam(r))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/blog", "error", "Blog post not found.")
			return
		}
		h.fail(w, r, "/admin/blog", "Could not load blog post.", err)
		return
	}
	h.confirmDelete(w, r, "Blog Post", post.Title, "/admin/blog")
}

func (h *AdminHandler) DeletePostPost(w http.ResponseWriter, r *http.Request) {
	if !deleteConfirmed(w, r) {
		return
	}

	if err := h.content.DeletePost(r.Context(), idParam(r)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			helpers.RedirectWithMessage(w, r, "/admin/blog", "error", "Blog post not found.")
			return
		}
		h.fail(w, r, "/admin/blog", "Could not delete blog post.", err)
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/blog", "success", "Blog post deleted.")
}

func (h *AdminHandler) parsePostForm(w http.ResponseWriter, r *http.Request, back string) (*services.PostInput, bool) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, back, "Could not read the form.", err)
		return nil, false
	}
	return &services.PostInput{
		Title:           r.PostFormValue("title"),
		Slug:            r.PostFormValue("slug"),
		Excerpt:         r.PostFormValue("excerpt"),
		Content:         r.PostFormValue("content"),
		FeaturedImage:   r.PostFormValue("featured_image"),
		Author:          r.PostFormValue("author"),
		PublishDate:     r.PostFormValue("publish_date"),
		IsPublished:     helpers.FormBool(r.PostFormValue("is_published")),
		MetaTitle:       r.PostFormValue("meta_title"),
		MetaDescription: r.PostFormValue("meta_description"),
	}, true
}

func (h *AdminHandler) renderPostForm(w http.ResponseWriter, r *http.Request, form *services.PostInput, id string, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	data := &AdminBlogPageData{
		PostData:   form,
		IsEdit:     id != "",
		FormAction: "/admin/blog",
		Errors:     errs,
	}
	if data.IsEdit {
		data.Title = "Edit Blog Post"
		data.FormAction = "/admin/blog/" + id + "/edit"
		data.Breadcrumbs = breadcrumb.Admin(blogCrumb, breadcrumb.Breadcrumb{Name: "Edit", URL: data.FormAction})
	} else {
		data.Title = "New Blog Post"
		data.Breadcrumbs = breadcrumb.Admin(blogCrumb, breadcrumb.Breadcrumb{Name: "New", URL: "/admin/blog/new"})
	}
	h.populateBaseDataForAdmin(r, data)

	_ = h.render.HTML(w, http.StatusOK, "admin/blog/form", data)
}
