package renderer

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/unrolled/render"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders rich text. Raw HTML in the source is dropped by goldmark's
// default renderer.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		zap.L().Warn("failed to render markdown", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

var statusClasses = map[string]string{
	"new":       "status-new",
	"pending":   "status-new",
	"contacted": "status-progress",
	"confirmed": "status-progress",
	"qualified": "status-good",
	"completed": "status-good",
	"closed":    "status-closed",
	"cancelled": "status-closed",
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": func(v interface{}) template.HTML {
			switch s := v.(type) {
			case string:
				return Markdown(s)
			case *string:
				if s == nil {
					return ""
				}
				return Markdown(*s)
			}
			return ""
		},
		"deref":    helpers.Deref,
		"humanize": helpers.Humanize,
		"formatDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.UTC().Format("Jan 2, 2006 15:04 MST")
		},
		"statusClass": func(status string) string {
			if c, ok := statusClasses[status]; ok {
				return c
			}
			return "status-unknown"
		},
		"join":     strings.Join,
		"contains": helpers.Contains,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"min": func(a, b int) int {
			if a < b {
				return a
			}
			return b
		},
	}
}

// Standalone wraps templates that are complete documents of their own.
var Standalone = render.HTMLOptions{Layout: "bare"}

// New builds the HTML renderer over the templates in dir. Every page is
// wrapped in the "layout" template unless the caller overrides it.
func New(dir string, development bool) *render.Render {
	return render.New(render.Options{
		Directory:     dir,
		Layout:        "layout",
		Extensions:    []string{".html"},
		Funcs:         []template.FuncMap{Funcs()},
		IsDevelopment: development,
	})
}
