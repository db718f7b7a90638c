package breadcrumb

type Breadcrumb struct {
	Name string
	URL  string
}

// Admin returns the admin root trail followed by the given crumbs.
func Admin(crumbs ...Breadcrumb) []Breadcrumb {
	out := []Breadcrumb{{Name: "Admin", URL: "/admin/dashboard"}}
	return append(out, crumbs...)
}
