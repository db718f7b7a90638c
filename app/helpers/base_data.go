package helpers

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/general-equipments/app/models/other"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"github.com/Rakhulsr/general-equipments/app/utils/sessions"
	"github.com/gorilla/csrf"
)

const DefaultSiteTitle = "General Equipments"

// PopulateBaseData fills the request scoped fields of base. Title and
// Breadcrumbs are only defaulted when the caller left them empty.
func PopulateBaseData(r *http.Request, base *other.BasePageData) {
	base.Settings = SettingsFromContext(r.Context())
	if base.Title == "" {
		base.Title = DefaultSiteTitle
		if name := base.Settings["company_name"]; name != "" {
			base.Title = name
		}
	}
	if base.Breadcrumbs == nil {
		base.Breadcrumbs = []breadcrumb.Breadcrumb{}
	}

	state := sessions.AuthStateFrom(r.Context())
	if state.IsAuthenticated() {
		base.IsLoggedIn = true
		base.User = &other.UserForTemplate{
			ID:    state.User.ID,
			Name:  state.User.Name,
			Email: state.User.Email,
		}
	}

	base.CSRFField = csrf.TemplateField(r)
	base.Query = r.URL.Query()
	base.CurrentPath = r.URL.Path
	base.IsAdminPage = strings.HasPrefix(r.URL.Path, "/admin")
	if msg := r.URL.Query().Get("message"); msg != "" {
		base.Message = msg
		base.MessageStatus = r.URL.Query().Get("status")
	}
}

// GetBaseData merges the shared page fields into pageSpecificData without
// overwriting keys the caller already set.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	base := other.BasePageData{}
	if title, ok := pageSpecificData["Title"].(string); ok {
		base.Title = title
	}
	PopulateBaseData(r, &base)

	defaults := map[string]interface{}{
		"Title":           base.Title,
		"MetaDescription": base.MetaDescription,
		"IsLoggedIn":      base.IsLoggedIn,
		"User":            base.User,
		"CSRFField":       base.CSRFField,
		"Message":         base.Message,
		"MessageStatus":   base.MessageStatus,
		"Query":           base.Query,
		"Breadcrumbs":     base.Breadcrumbs,
		"IsAdminPage":     base.IsAdminPage,
		"CurrentPath":     base.CurrentPath,
		"Settings":        base.Settings,
	}
	for k, v := range defaults {
		if _, exists := pageSpecificData[k]; !exists {
			pageSpecificData[k] = v
		}
	}

	return pageSpecificData
}
