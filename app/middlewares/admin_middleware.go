package middlewares

import (
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/utils/renderer"
	"github.com/Rakhulsr/general-equipments/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const adminLoginPath = "/admin/login"

// AdminGuard gates the back office on the resolved auth state. While the
// state is still loading it serves a neutral waiting page and touches no
// data; signed out visitors are sent to the login page without remembering
// where they were going.
func AdminGuard(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sessions.AuthStateFrom(r.Context())

			switch state.Status {
			case sessions.AuthAuthenticated:
				next.ServeHTTP(w, r)
			case sessions.AuthUnauthenticated:
				zap.L().Debug("redirecting signed out visitor", zap.String("path", r.URL.Path))
				http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
			default:
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Cache-Control", "no-store")
				_ = rnd.HTML(w, http.StatusServiceUnavailable, "admin/waiting", map[string]interface{}{
					"Title":       "Loading",
					"IsAdminPage": true,
				}, renderer.Standalone)
			}
		})
	}
}
