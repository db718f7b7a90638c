package other

import (
	"html/template"
	"net/url"

	"github.com/Rakhulsr/general-equipments/app/utils/breadcrumb"
)

type UserForTemplate struct {
	ID    string
	Name  string
	Email string
}

type BasePageData struct {
	Title           string
	MetaDescription string
	IsLoggedIn      bool
	User            *UserForTemplate
	CSRFField       template.HTML
	Message         string
	MessageStatus   string
	Query           url.Values
	Breadcrumbs     []breadcrumb.Breadcrumb
	IsAdminPage     bool
	CurrentPath     string
	Settings        map[string]string
}

// Base lets page structs that embed BasePageData be populated generically.
func (b *BasePageData) Base() *BasePageData { return b }

// Setting returns a site setting value or the empty string.
func (b BasePageData) Setting(key string) string {
	if b.Settings == nil {
		return ""
	}
	return b.Settings[key]
}
