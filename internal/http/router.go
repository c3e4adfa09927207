package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ouveo-backend/internal/handlers"
	"ouveo-backend/internal/middleware"
	"ouveo-backend/internal/models"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	serviceHandler *handlers.ServiceHandler,
	bookingHandler *handlers.BookingHandler,
	missionHandler *handlers.MissionHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
	portfolioHandler *handlers.PortfolioHandler,
	messageHandler *handlers.MessageHandler,
	reportHandler *handlers.ReportHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) *mux.Router {
	r := mux.NewRouter()

	// Uploaded files (avatars, service images, mission photos, portfolio)
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Public API routes - catalog and artisan directory
	r.HandleFunc("/api/services", serviceHandler.List).Methods("GET")
	r.HandleFunc("/api/services/{id:[0-9]+}", serviceHandler.Get).Methods("GET")
	r.HandleFunc("/api/services/{id:[0-9]+}/availability", bookingHandler.Availability).Methods("GET")
	r.HandleFunc("/api/artisans", userHandler.ListArtisans).Methods("GET")
	r.HandleFunc("/api/artisans/{id:[0-9]+}", userHandler.GetArtisan).Methods("GET")
	r.HandleFunc("/api/artisans/{id:[0-9]+}/portfolio", portfolioHandler.ListByArtisan).Methods("GET")

	// Public API routes - contact form and mission validation link
	r.HandleFunc("/api/messages", messageHandler.Submit).Methods("POST")
	r.HandleFunc("/api/public/missions/validate/{token}", missionHandler.ValidateByToken).Methods("POST")

	// Public API routes - online payment
	r.HandleFunc("/api/payments/status", paymentHandler.Status).Methods("GET")
	r.HandleFunc("/api/payments/order", paymentHandler.CreateOrder).Methods("POST")
	r.HandleFunc("/api/payments/verify", paymentHandler.Verify).Methods("POST")
	r.HandleFunc("/api/payments/webhook", paymentHandler.Webhook).Methods("POST")

	// Protected API routes - own account
	accountAPI := r.PathPrefix("/api/account").Subrouter()
	accountAPI.Use(authMiddleware.Authenticate)
	accountAPI.HandleFunc("", authHandler.Me).Methods("GET")
	accountAPI.HandleFunc("", userHandler.UpdateProfile).Methods("PUT")
	accountAPI.HandleFunc("/avatar", userHandler.UploadAvatar).Methods("POST")

	// Protected API routes - service management (artisans)
	servicesAPI := r.PathPrefix("/api/services").Subrouter()
	servicesAPI.Use(authMiddleware.Authenticate)
	servicesAPI.Handle("", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(serviceHandler.Create))).Methods("POST")
	servicesAPI.Handle("/mine", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(serviceHandler.Mine))).Methods("GET")
	servicesAPI.Handle("/{id:[0-9]+}/image", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(serviceHandler.UploadImage))).Methods("POST")
	servicesAPI.Handle("/{id:[0-9]+}", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(serviceHandler.Delete))).Methods("DELETE")

	// Protected API routes - bookings
	bookingsAPI := r.PathPrefix("/api/bookings").Subrouter()
	bookingsAPI.Use(authMiddleware.Authenticate)
	bookingsAPI.HandleFunc("", bookingHandler.Create).Methods("POST")
	bookingsAPI.HandleFunc("", bookingHandler.List).Methods("GET")
	bookingsAPI.HandleFunc("/{id:[0-9]+}", bookingHandler.Get).Methods("GET")
	bookingsAPI.HandleFunc("/{id:[0-9]+}/status", bookingHandler.UpdateStatus).Methods("PATCH")
	bookingsAPI.HandleFunc("/{id:[0-9]+}", bookingHandler.Delete).Methods("DELETE")

	// Protected API routes - missions
	missionsAPI := r.PathPrefix("/api/missions").Subrouter()
	missionsAPI.Use(authMiddleware.Authenticate)
	missionsAPI.HandleFunc("", missionHandler.List).Methods("GET")
	missionsAPI.HandleFunc("/{id:[0-9]+}", missionHandler.Get).Methods("GET")
	missionsAPI.HandleFunc("/{id:[0-9]+}", missionHandler.Update).Methods("PUT")
	missionsAPI.HandleFunc("/{id:[0-9]+}/status", missionHandler.UpdateStatus).Methods("PATCH")
	missionsAPI.HandleFunc("/{id:[0-9]+}/materials", missionHandler.AddMaterial).Methods("POST")
	missionsAPI.HandleFunc("/{id:[0-9]+}/photos", missionHandler.UploadPhoto).Methods("POST")
	missionsAPI.HandleFunc("/{id:[0-9]+}/comments", missionHandler.AddComment).Methods("POST")

	// Protected API routes - invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.Create).Methods("POST")
	invoicesAPI.HandleFunc("", invoiceHandler.List).Methods("GET")
	invoicesAPI.HandleFunc("/{id:[0-9]+}", invoiceHandler.Get).Methods("GET")
	invoicesAPI.HandleFunc("/{id:[0-9]+}", invoiceHandler.Update).Methods("PUT")
	invoicesAPI.HandleFunc("/{id:[0-9]+}/status", invoiceHandler.UpdateStatus).Methods("PATCH")
	invoicesAPI.HandleFunc("/{id:[0-9]+}", invoiceHandler.Delete).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id:[0-9]+}/pdf", invoiceHandler.DownloadPDF).Methods("GET")

	// Protected API routes - portfolio management (artisans)
	portfolioAPI := r.PathPrefix("/api/portfolio").Subrouter()
	portfolioAPI.Use(authMiddleware.Authenticate)
	portfolioAPI.Handle("", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(portfolioHandler.Create))).Methods("POST")
	portfolioAPI.Handle("", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(portfolioHandler.Mine))).Methods("GET")
	portfolioAPI.Handle("/{id:[0-9]+}", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(portfolioHandler.Update))).Methods("PUT")
	portfolioAPI.Handle("/{id:[0-9]+}", authMiddleware.RequireRole(models.RoleArtisan)(http.HandlerFunc(portfolioHandler.Delete))).Methods("DELETE")

	// Protected API routes - message triage (staff)
	messagesAPI := r.PathPrefix("/api/messages").Subrouter()
	messagesAPI.Use(authMiddleware.Authenticate)
	messagesAPI.Handle("", authMiddleware.RequireStaff(http.HandlerFunc(messageHandler.List))).Methods("GET")
	messagesAPI.Handle("/{id:[0-9]+}", authMiddleware.RequireStaff(http.HandlerFunc(messageHandler.Get))).Methods("GET")
	messagesAPI.Handle("/{id:[0-9]+}/processed", authMiddleware.RequireStaff(http.HandlerFunc(messageHandler.MarkProcessed))).Methods("PATCH")
	messagesAPI.Handle("/{id:[0-9]+}", authMiddleware.RequireStaff(http.HandlerFunc(messageHandler.Delete))).Methods("DELETE")

	// Protected API routes - reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("", reportHandler.File).Methods("POST")
	reportsAPI.Handle("", authMiddleware.RequireAdmin(http.HandlerFunc(reportHandler.List))).Methods("GET")
	reportsAPI.Handle("/{id:[0-9]+}", authMiddleware.RequireAdmin(http.HandlerFunc(reportHandler.Get))).Methods("GET")
	reportsAPI.Handle("/{id:[0-9]+}/resolve", authMiddleware.RequireAdmin(http.HandlerFunc(reportHandler.Resolve))).Methods("POST")

	// Protected API routes - admin
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate)
	adminAPI.Handle("/users", authMiddleware.RequireStaff(http.HandlerFunc(userHandler.ListUsers))).Methods("GET")
	adminAPI.Handle("/users/{id:[0-9]+}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.AdminUpdateUser))).Methods("PATCH")
	adminAPI.Handle("/analytics/latest", authMiddleware.RequireStaff(http.HandlerFunc(analyticsHandler.Latest))).Methods("GET")
	adminAPI.Handle("/analytics/history", authMiddleware.RequireStaff(http.HandlerFunc(analyticsHandler.History))).Methods("GET")
	adminAPI.Handle("/analytics/collect", authMiddleware.RequireAdmin(http.HandlerFunc(analyticsHandler.Collect))).Methods("POST")
	adminAPI.Handle("/analytics/bookings", authMiddleware.RequireStaff(http.HandlerFunc(analyticsHandler.BookingCounts))).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
