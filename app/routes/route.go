package routes

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/general-equipments/app/configs"
	"github.com/Rakhulsr/general-equipments/app/handlers"
	"github.com/Rakhulsr/general-equipments/app/handlers/admin"
	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/middlewares"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	DB     *gorm.DB
	Render *render.Render
	Logger *zap.Logger
	Keys   *configs.SessionKeys
	// CookieSecure marks the session and CSRF cookies Secure.
	CookieSecure bool
	// SheetsWebhookURL enables the spreadsheet mirror when set.
	SheetsWebhookURL string
	StaticDir        string
	// Now overrides the clock used for blog visibility.
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	validate := helpers.NewValidator()

	categoryRepo := repositories.NewCategoryRepository(opts.DB)
	productRepo := repositories.NewProductRepository(opts.DB)
	blogRepo := repositories.NewBlogRepository(opts.DB)
	leadRepo := repositories.NewLeadRepository(opts.DB)
	bookingRepo := repositories.NewBookingRepository(opts.DB)
	settingRepo := repositories.NewSettingRepository(opts.DB)
	userRepo := repositories.NewUserRepository(opts.DB)

	var mirror services.Mirror
	if opts.SheetsWebhookURL != "" {
		mirror = services.NewSheetsMirror(opts.SheetsWebhookURL, log.Named("mirror"))
	}

	catalog := services.NewCatalogService(categoryRepo, productRepo, blogRepo, settingRepo, log.Named("catalog"))
	if opts.Now != nil {
		catalog.WithClock(opts.Now)
	}
	intake := services.NewIntakeService(leadRepo, bookingRepo, mirror, validate, log.Named("intake"))
	content := services.NewContentService(productRepo, categoryRepo, blogRepo, validate, log.Named("content"))
	adminSvc := services.NewAdminService(productRepo, blogRepo, leadRepo, bookingRepo, settingRepo, log.Named("admin"))
	authSvc := services.NewAuthService(userRepo, log.Named("auth"))

	sessionStore := sessions.NewCookieSessionStore(opts.CookieSecure, opts.Keys.AuthKey, opts.Keys.EncKey)

	homeHandler := handlers.NewHomeHandler(opts.Render, catalog, log)
	productHandler := handlers.NewProductHandler(opts.Render, catalog, intake, validate, log)
	blogHandler := handlers.NewBlogHandler(opts.Render, catalog, log)
	formsHandler := handlers.NewFormsHandler(opts.Render, intake, validate, log)
	submitHandler := handlers.NewSubmitHandler(opts.Render, intake, log)
	authHandler := handlers.NewAuthHandler(opts.Render, authSvc, sessionStore, log)
	adminHandler := admin.NewAdminHandler(opts.Render, content, adminSvc, log)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger(log.Named("http")))

	// Submission endpoints: JSON, CORS open, no session.
	for _, prefix := range []string{"", "/functions/v1"} {
		router.Handle(prefix+"/submit-lead", middlewares.CORS(http.HandlerFunc(submitHandler.SubmitLead))).
			Methods(http.MethodPost, http.MethodOptions)
		router.Handle(prefix+"/submit-booking", middlewares.CORS(http.HandlerFunc(submitHandler.SubmitBooking))).
			Methods(http.MethodPost, http.MethodOptions)
	}

	if opts.StaticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	pages := router.NewRoute().Subrouter()
	pages.Use(middlewares.AuthStateMiddleware(sessionStore, userRepo))
	pages.Use(middlewares.SiteSettingsMiddleware(catalog))

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/about", homeHandler.Static("about", "About Us")).Methods(http.MethodGet)
	pages.HandleFunc("/privacy-policy", homeHandler.Static("privacy", "Privacy Policy")).Methods(http.MethodGet)
	pages.HandleFunc("/terms-and-conditions", homeHandler.Static("terms", "Terms and Conditions")).Methods(http.MethodGet)

	pages.HandleFunc("/products", productHandler.Products).Methods(http.MethodGet)
	pages.HandleFunc("/products/category/{slug}", productHandler.Products).Methods(http.MethodGet)
	pages.HandleFunc("/products/{slug}", productHandler.ProductDetail).Methods(http.MethodGet)
	pages.HandleFunc("/products/{slug}/inquiry", productHandler.ProductInquiry).Methods(http.MethodPost)

	pages.HandleFunc("/blog", blogHandler.Index).Methods(http.MethodGet)
	pages.HandleFunc("/blog/{slug}", blogHandler.Show).Methods(http.MethodGet)

	pages.HandleFunc("/contact", formsHandler.ContactPage).Methods(http.MethodGet)
	pages.HandleFunc("/contact", formsHandler.ContactPost).Methods(http.MethodPost)
	pages.HandleFunc("/book-a-call", formsHandler.BookCallPage).Methods(http.MethodGet)
	pages.HandleFunc("/book-a-call", formsHandler.BookCallPost).Methods(http.MethodPost)

	pages.HandleFunc("/admin", adminHandler.RedirectToDashboard).Methods(http.MethodGet)

	adminRouter := pages.PathPrefix("/admin").Subrouter()
	if len(opts.Keys.CSRFKey) > 0 {
		adminRouter.Use(csrf.Protect(
			opts.Keys.CSRFKey,
			csrf.Secure(opts.CookieSecure),
			csrf.Path("/admin"),
			csrf.FieldName("csrf_token"),
		))
	}

	adminRouter.HandleFunc("/login", authHandler.LoginGetHandler).Methods(http.MethodGet)
	adminRouter.HandleFunc("/login", authHandler.LoginPostHandler).Methods(http.MethodPost)
	adminRouter.HandleFunc("/logout", authHandler.LogoutHandler).Methods(http.MethodPost)

	guarded := adminRouter.NewRoute().Subrouter()
	guarded.Use(middlewares.AdminGuard(opts.Render))

	guarded.HandleFunc("/dashboard", adminHandler.GetDashboard).Methods(http.MethodGet)

	guarded.HandleFunc("/products", adminHandler.GetProductsPage).Methods(http.MethodGet)
	guarded.HandleFunc("/products", adminHandler.AddProductPost).Methods(http.MethodPost)
	guarded.HandleFunc("/products/new", adminHandler.AddProductPage).Methods(http.MethodGet)
	guarded.HandleFunc("/products/{id}", adminHandler.GetProductPage).Methods(http.MethodGet)
	guarded.HandleFunc("/products/{id}/edit", adminHandler.EditProductPage).Methods(http.MethodGet)
	guarded.HandleFunc("/products/{id}/edit", adminHandler.EditProductPost).Methods(http.MethodPost)
	guarded.HandleFunc("/products/{id}/delete", adminHandler.DeleteProductPage).Methods(http.MethodGet)
	guarded.HandleFunc("/products/{id}/delete", adminHandler.DeleteProductPost).Methods(http.MethodPost, http.MethodDelete)

	guarded.HandleFunc("/categories", adminHandler.GetCategoriesPage).Methods(http.MethodGet)
	guarded.HandleFunc("/categories", adminHandler.AddCategoryPost).Methods(http.MethodPost)
	guarded.HandleFunc("/categories/new", adminHandler.AddCategoryPage).Methods(http.MethodGet)
	guarded.HandleFunc("/categories/{id}/edit", adminHandler.EditCategoryPage).Methods(http.MethodGet)
	guarded.HandleFunc("/categories/{id}/edit", adminHandler.EditCategoryPost).Methods(http.MethodPost)
	guarded.HandleFunc("/categories/{id}/delete", adminHandler.DeleteCategoryPage).Methods(http.MethodGet)
	guarded.HandleFunc("/categories/{id}/delete", adminHandler.DeleteCategoryPost).Methods(http.MethodPost, http.MethodDelete)

	guarded.HandleFunc("/blog", adminHandler.GetPostsPage).Methods(http.MethodGet)
	guarded.HandleFunc("/blog", adminHandler.AddPostPost).Methods(http.MethodPost)
	guarded.HandleFunc("/blog/new", adminHandler.AddPostPage).Methods(http.MethodGet)
	guarded.HandleFunc("/blog/{id}", adminHandler.GetPostPage).Methods(http.MethodGet)
	guarded.HandleFunc("/blog/{id}/edit", adminHandler.EditPostPage).Methods(http.MethodGet)
	guarded.HandleFunc("/blog/{id}/edit", adminHandler.EditPostPost).Methods(http.MethodPost)
	guarded.HandleFunc("/blog/{id}/delete", adminHandler.DeletePostPage).Methods(http.MethodGet)
	guarded.HandleFunc("/blog/{id}/delete", adminHandler.DeletePostPost).Methods(http.MethodPost, http.MethodDelete)

	guarded.HandleFunc("/leads", adminHandler.GetLeadsPage).Methods(http.MethodGet)
	guarded.HandleFunc("/leads/export", adminHandler.ExportLeadsCSV).Methods(http.MethodGet)
	guarded.HandleFunc("/leads/{id}", adminHandler.GetLeadPage).Methods(http.MethodGet)
	guarded.HandleFunc("/leads/{id}/status", adminHandler.UpdateLeadStatusPost).Methods(http.MethodPost)

	guarded.HandleFunc("/bookings", adminHandler.GetBookingsPage).Methods(http.MethodGet)
	guarded.HandleFunc("/bookings/export", adminHandler.ExportBookingsCSV).Methods(http.MethodGet)
	guarded.HandleFunc("/bookings/{id}", adminHandler.GetBookingPage).Methods(http.MethodGet)
	guarded.HandleFunc("/bookings/{id}/status", adminHandler.UpdateBookingStatusPost).Methods(http.MethodPost)

	guarded.HandleFunc("/settings", adminHandler.GetSettingsPage).Methods(http.MethodGet)
	guarded.HandleFunc("/settings", adminHandler.SaveSettingsPost).Methods(http.MethodPost)

	router.NotFoundHandler = middlewares.AuthStateMiddleware(sessionStore, userRepo)(
		middlewares.SiteSettingsMiddleware(catalog)(http.HandlerFunc(homeHandler.NotFound)),
	)

	return middlewares.MethodOverrideMiddleware(router)
}
