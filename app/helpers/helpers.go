package helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeySettings contextKey = "siteSettings"
)

// WithSettings stores the site settings map on ctx.
func WithSettings(ctx context.Context, settings map[string]string) context.Context {
	return context.WithValue(ctx, ContextKeySettings, settings)
}

// SettingsFromContext never returns nil.
func SettingsFromContext(ctx context.Context) map[string]string {
	if settings, ok := ctx.Value(ContextKeySettings).(map[string]string); ok && settings != nil {
		return settings
	}
	return map[string]string{}
}

// RedirectWithMessage redirects with a flash message carried in the query
// string, which GetBaseData picks up on the next page.
func RedirectWithMessage(w http.ResponseWriter, r *http.Request, path, status, message string) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	target := fmt.Sprintf("%s%sstatus=%s&message=%s", path, sep, url.QueryEscape(status), url.QueryEscape(message))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		zap.L().Debug("password does not match", zap.Error(err))
		return false
	}
	return true
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}

// Humanize turns "product_inquiry" into "Product Inquiry".
func Humanize(s string) string {
	if len(s) == 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
