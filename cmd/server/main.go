package main

import (
	"InvoiceAPI/internal/config"
	"InvoiceAPI/internal/handlers"
	"InvoiceAPI/internal/middleware"
	"InvoiceAPI/internal/repo"
	"InvoiceAPI/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	customerRepo := repo.NewCustomerRepository(gormDB)
	invoiceRepo := repo.NewInvoiceRepository(gormDB)
	rowRepo := repo.NewRowRepository(gormDB)

	userService := service.NewUserService(userRepo)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(customerRepo, invoiceRepo)
	rowService := service.NewRowService(customerRepo, invoiceRepo, rowRepo)
	reportService := service.NewReportService(customerRepo)

	h := handlers.NewHandler(userService, customerService, invoiceService, rowService, reportService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
