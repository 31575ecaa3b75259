package main

import (
	"net/http"
	"os"
	"strings"

	"payables/internal/domain/sqlite"
	"payables/internal/domain/sqlite/repository"
	"payables/internal/http/handler"
	"payables/internal/service"
	"payables/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

func main() {
	// Loads from .env when present; deployment environments inject vars directly
	_ = godotenv.Load()

	validate := validator.New()
	registerValidators(validate)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "./database.db"
	}

	db, err := sqlite.Init(dsn)
	if err != nil {
		log.Fatalf("unable to open database: %v", err)
	}

	// Gettings repos
	companyRepo := repository.NewCompanyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Getting services
	companyService := service.NewCompanyService(companyRepo, validate)
	invoiceService := service.NewInvoiceService(invoiceRepo, companyRepo, validate)
	reportService := service.NewReportService(invoiceRepo)

	// Gettings handlers
	companyRoutes := handler.NewCompanyDefault(companyService)
	invoiceRoutes := handler.NewInvoiceDefault(invoiceService)
	reportRoutes := handler.NewReportDefault(reportService)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.CORSWithConfig(corsConfig()))
	e.Use(middleware.BodyLimit("1M"))

	// Companies
	e.GET("/companies", companyRoutes.GetCompanies)
	e.POST("/companies", companyRoutes.CreateCompany)

	// Invoices
	e.GET("/invoices", invoiceRoutes.GetInvoices)
	e.POST("/invoices", invoiceRoutes.CreateInvoice)
	e.PATCH("/invoices/:id/pay", invoiceRoutes.PayInvoice)

	// Reports
	e.GET("/reports/financial/:year", reportRoutes.GetFinancialReport)
	e.GET("/reports/export/:year", reportRoutes.ExportReport)
	e.GET("/reports/export/:year/:month", reportRoutes.ExportReport)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := e.Start(":" + port); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	validate.RegisterCustomTypeFunc(validators.DecimalAsFloat, decimal.Decimal{})
	_ = validate.RegisterValidation("cnpj", validators.CNPJ)
	_ = validate.RegisterValidation("barcode", validators.Barcode)
}

func corsConfig() middleware.CORSConfig {
	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowCredentials: true,
	}
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
