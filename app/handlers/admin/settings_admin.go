package admin

import (
	"net/http"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
	"go.uber.org/zap"
)

func (h *AdminHandler) GetSettingsPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminSettingsPageData{Keys: models.SettingKeys}
	data.Title = "Site Settings"
	data.Breadcrumbs = breadcrumb.Admin(breadcrumb.Breadcrumb{Name: "Settings", URL: "/admin/settings"})
	h.populateBaseDataForAdmin(r, data)

	values, err := h.admin.Settings(r.Context())
	if err != nil {
		h.log.Error("failed to load settings", zap.Error(err))
		data.Message = "Could not load settings."
		data.MessageStatus = "error"
		values = map[string]string{}
	}
	data.Values = values

	_ = h.render.HTML(w, http.StatusOK, "admin/settings", data)
}

func (h *AdminHandler) SaveSettingsPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "/admin/settings", "Could not read the form.", err)
		return
	}

	values := make(map[string]string, len(models.SettingKeys))
	for _, key := range models.SettingKeys {
		values[key] = r.PostFormValue(key)
	}

	if err := h.admin.SaveSettings(r.Context(), values); err != nil {
		h.fail(w, r, "/admin/settings", "Could not save settings. Nothing was changed.", err)
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/settings", "success", "Settings saved.")
}
