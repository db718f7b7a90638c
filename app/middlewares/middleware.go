package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/sessions"
	"go.uber.org/zap"
)

// AuthStateMiddleware resolves the admin session cookie and attaches the
// result to the request context. A failed lookup leaves the state loading
// rather than signing the user out.
func AuthStateMiddleware(store sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sessions.Unauthenticated()

			if userID := store.GetUserID(r); userID != "" {
				user, err := userRepo.FindByID(r.Context(), userID)
				switch {
				case err != nil:
					zap.L().Warn("failed to resolve admin session", zap.String("user_id", userID), zap.Error(err))
					state = sessions.AuthState{}
				case user == nil:
					state = sessions.Unauthenticated()
				default:
					state = sessions.Authenticated(user)
				}
			}

			next.ServeHTTP(w, r.WithContext(sessions.WithAuthState(r.Context(), state)))
		})
	}
}

// SiteSettingsMiddleware loads the site settings for the page footer and
// contact blocks. A failure renders pages without them.
func SiteSettingsMiddleware(catalog *services.CatalogService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			settings, err := catalog.SiteSettings(r.Context())
			if err != nil {
				zap.L().Warn("failed to load site settings", zap.Error(err))
				settings = map[string]string{}
			}
			next.ServeHTTP(w, r.WithContext(helpers.WithSettings(r.Context(), settings)))
		})
	}
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			_ = r.ParseForm()
			override := r.Form.Get("_method")
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Client-Info, Apikey",
}

// CORS stamps the submission endpoint headers on every response and answers
// preflight requests with an empty 200.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range corsHeaders {
			w.Header().Set(k, v)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
