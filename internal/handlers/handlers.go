package handlers

import (
	"InvoiceAPI/internal/config"
	"InvoiceAPI/internal/middleware"
	"InvoiceAPI/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	customerService *service.CustomerService,
	invoiceService *service.InvoiceService,
	rowService *service.RowService,
	reportService *service.ReportService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	validate := validator.New()

	// Handlers
	userHandler := NewUserHandler(userService, logger, cfg, validate)
	customerHandler := NewCustomerHandler(customerService, logger, validate)
	invoiceHandler := NewInvoiceHandler(invoiceService, logger, validate)
	rowHandler := NewRowHandler(rowService, logger, validate)
	reportHandler := NewReportHandler(reportService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Get("/api/user/info", userHandler.Info)
	r.Put("/api/user/profile", userHandler.EditProfile)
	r.Patch("/api/user/password", userHandler.ChangePassword)
	r.Delete("/api/user/profile", userHandler.DeleteProfile)

	// Customer routes
	r.Post("/api/customers", customerHandler.Create)
	r.Get("/api/customers", customerHandler.List)
	r.Get("/api/customers/{customerID}", customerHandler.Get)
	r.Put("/api/customers/{customerID}", customerHandler.Edit)
	r.Delete("/api/customers/{customerID}", customerHandler.Delete)
	r.Delete("/api/customers/{customerID}/archive", customerHandler.Archive)

	// Invoice routes
	r.Post("/api/customers/{customerID}/invoices", invoiceHandler.Create)
	r.Get("/api/customers/{customerID}/invoices", invoiceHandler.List)
	r.Get("/api/customers/{customerID}/invoices/{invoiceID}", invoiceHandler.Get)
	r.Put("/api/customers/{customerID}/invoices/{invoiceID}", invoiceHandler.Edit)
	r.Patch("/api/customers/{customerID}/invoices/{invoiceID}/status", invoiceHandler.ChangeStatus)
	r.Delete("/api/customers/{customerID}/invoices/{invoiceID}", invoiceHandler.Delete)
	r.Delete("/api/customers/{customerID}/invoices/{invoiceID}/archive", invoiceHandler.Archive)
	r.Get("/api/customers/{customerID}/invoices/{invoiceID}/pdf", invoiceHandler.Download)

	// Row routes
	r.Post("/api/customers/{customerID}/invoices/{invoiceID}/rows", rowHandler.Add)
	r.Delete("/api/customers/{customerID}/invoices/{invoiceID}/rows/{rowID}", rowHandler.Remove)

	// Report routes
	r.Get("/api/reports/customers", reportHandler.Customers)

	return &Handler{Router: r}
}
