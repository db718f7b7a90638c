package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/renderer"
	"github.com/Rakhulsr/general-equipments/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const adminHome = "/admin/dashboard"

type AuthHandler struct {
	render       *render.Render
	auth         *services.AuthService
	sessionStore sessions.SessionStore
	log          *zap.Logger
}

func NewAuthHandler(r *render.Render, auth *services.AuthService, sessionStore sessions.SessionStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		render:       r,
		auth:         auth,
		sessionStore: sessionStore,
		log:          log,
	}
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if sessions.AuthStateFrom(r.Context()).IsAuthenticated() {
		http.Redirect(w, r, adminHome, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, "", "")
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, "", "We could not read the form. Please try again.")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.SignIn(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.renderLogin(w, r, email, "Invalid email or password")
			return
		}
		h.log.Error("admin sign in failed", zap.Error(err))
		h.renderLogin(w, r, email, "Sign in is temporarily unavailable. Please try again.")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		h.log.Error("failed to save admin session", zap.Error(err))
		h.renderLogin(w, r, email, "Sign in is temporarily unavailable. Please try again.")
		return
	}

	http.Redirect(w, r, adminHome, http.StatusSeeOther)
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		h.log.Warn("failed to clear admin session", zap.Error(err))
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, email, loginError string) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "Admin Login",
		"Email":      email,
		"LoginError": loginError,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin/login", data, renderer.Standalone)
}
