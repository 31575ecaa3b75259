package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payables/internal/contract"
	"payables/internal/domain/entity"
	"payables/internal/domain/sqlite/repository"
	"payables/internal/service"
	"payables/internal/utils/validators"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	validCNPJ      = "11222333000181"
	otherCNPJ      = "34028316000103"
	sampleBarcode  = "12345678901234567890123456789012345678901234"
	anotherBarcode = "98765432109876543210987654321098765432109876"
)

func setupServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Company{}, &entity.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	validate := validator.New()
	validate.RegisterCustomTypeFunc(validators.DecimalAsFloat, decimal.Decimal{})
	_ = validate.RegisterValidation("cnpj", validators.CNPJ)
	_ = validate.RegisterValidation("barcode", validators.Barcode)

	companyRepo := repository.NewCompanyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	companyRoutes := NewCompanyDefault(service.NewCompanyService(companyRepo, validate))
	invoiceRoutes := NewInvoiceDefault(service.NewInvoiceService(invoiceRepo, companyRepo, validate))
	reportRoutes := NewReportDefault(service.NewReportService(invoiceRepo))

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.GET("/companies", companyRoutes.GetCompanies)
	e.POST("/companies", companyRoutes.CreateCompany)
	e.GET("/invoices", invoiceRoutes.GetInvoices)
	e.POST("/invoices", invoiceRoutes.CreateInvoice)
	e.PATCH("/invoices/:id/pay", invoiceRoutes.PayInvoice)
	e.GET("/reports/financial/:year", reportRoutes.GetFinancialReport)
	e.GET("/reports/export/:year", reportRoutes.ExportReport)
	e.GET("/reports/export/:year/:month", reportRoutes.ExportReport)
	return e, db
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func seedCompany(t *testing.T, db *gorm.DB, name, cnpj string) *entity.Company {
	t.Helper()
	company := &entity.Company{Name: name, CNPJ: cnpj}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return company
}

func TestCreateAndListCompanies(t *testing.T) {
	e, _ := setupServer(t)

	body := `{"name":"Acme Ltda","cnpj":"` + validCNPJ + `"}`
	w := doJSON(e, http.MethodPost, "/companies", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var created contract.CompanyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.Name != "Acme Ltda" || created.CNPJ != validCNPJ {
		t.Errorf("unexpected company: %+v", created)
	}

	// Same CNPJ again is a conflict and must not create a second row
	w = doJSON(e, http.MethodPost, "/companies", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate CNPJ, got %d", w.Code)
	}

	w = doJSON(e, http.MethodGet, "/companies/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var list struct {
		Companies []contract.CompanyResponse `json:"companies"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Companies) != 1 {
		t.Errorf("companies = %d, want 1", len(list.Companies))
	}
}

func TestCreateCompanyValidation(t *testing.T) {
	e, _ := setupServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"cnpj":"` + validCNPJ + `"}`},
		{"bad check digits", `{"name":"Acme","cnpj":"11222333000180"}`},
		{"malformed json", `{"name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(e, http.MethodPost, "/companies", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateInvoice(t *testing.T) {
	e, db := setupServer(t)
	company := seedCompany(t, db, "Acme Ltda", validCNPJ)

	body := fmt.Sprintf(`{"description":"hosting","amount":123.45,"due_date":"2999-01-01","barcode":"%s","company_id":%d}`,
		sampleBarcode, company.ID)
	w := doJSON(e, http.MethodPost, "/invoices", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var created contract.InvoiceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Amount.Equal(decimal.NewFromFloat(123.45)) {
		t.Errorf("amount = %s, want 123.45", created.Amount)
	}
	if created.PaymentDate != nil {
		t.Errorf("new invoice must be unpaid, got payment date %v", *created.PaymentDate)
	}
	if created.Status != entity.StatusOpen {
		t.Errorf("status = %q, want open", created.Status)
	}
	if created.Company == nil || created.Company.ID != company.ID {
		t.Errorf("response must embed the owning company, got %+v", created.Company)
	}

	// Duplicate barcode conflicts and leaves the invoice count unchanged
	w = doJSON(e, http.MethodPost, "/invoices", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate barcode, got %d", w.Code)
	}
	var count int64
	db.Model(&entity.Invoice{}).Count(&count)
	if count != 1 {
		t.Errorf("invoice count = %d, want 1", count)
	}
}

func TestCreateInvoiceUnknownCompany(t *testing.T) {
	e, _ := setupServer(t)

	body := fmt.Sprintf(`{"description":"hosting","amount":10,"due_date":"2999-01-01","barcode":"%s","company_id":42}`,
		sampleBarcode)
	w := doJSON(e, http.MethodPost, "/invoices", body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPayInvoice(t *testing.T) {
	e, db := setupServer(t)
	company := seedCompany(t, db, "Acme Ltda", validCNPJ)

	invoice := &entity.Invoice{
		Description: "hosting",
		Amount:      decimal.NewFromInt(100),
		DueDate:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Barcode:     sampleBarcode,
		CompanyID:   company.ID,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	path := fmt.Sprintf("/invoices/%d/pay", invoice.ID)
	w := doJSON(e, http.MethodPatch, path, `{"payment_date":"2024-03-20"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var paid contract.InvoiceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &paid); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if paid.PaymentDate == nil || *paid.PaymentDate != "2024-03-20" {
		t.Errorf("payment date = %v, want 2024-03-20", paid.PaymentDate)
	}
	if paid.Status != entity.StatusPaid {
		t.Errorf("status = %q, want paid", paid.Status)
	}

	// The unpaid to paid transition happens once; a second pay is a conflict
	w = doJSON(e, http.MethodPatch, path, `{"payment_date":"2024-03-25"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for double pay, got %d", w.Code)
	}

	w = doJSON(e, http.MethodPatch, "/invoices/9999/pay", `{"payment_date":"2024-03-20"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown invoice, got %d", w.Code)
	}

	w = doJSON(e, http.MethodPatch, "/invoices/abc/pay", `{"payment_date":"2024-03-20"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestListInvoicesFilters(t *testing.T) {
	e, db := setupServer(t)
	acme := seedCompany(t, db, "Acme Ltda", validCNPJ)
	zen := seedCompany(t, db, "Zen Corp", otherCNPJ)

	paidAt := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	invoices := []*entity.Invoice{
		{Description: "paid", Amount: decimal.NewFromInt(10), DueDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), PaymentDate: &paidAt, Barcode: sampleBarcode, CompanyID: acme.ID},
		{Description: "open", Amount: decimal.NewFromInt(20), DueDate: time.Date(2999, time.January, 1, 0, 0, 0, 0, time.UTC), Barcode: anotherBarcode, CompanyID: zen.ID},
	}
	for _, invoice := range invoices {
		if err := db.Create(invoice).Error; err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}

	w := doJSON(e, http.MethodGet, "/invoices?status=paid", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var list struct {
		Invoices []contract.InvoiceResponse `json:"invoices"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Invoices) != 1 || list.Invoices[0].Description != "paid" {
		t.Errorf("status=paid returned %+v", list.Invoices)
	}

	w = doJSON(e, http.MethodGet, "/invoices?company_name=zen", "")
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Invoices) != 1 || list.Invoices[0].Company.Name != "Zen Corp" {
		t.Errorf("company_name=zen returned %+v", list.Invoices)
	}

	w = doJSON(e, http.MethodGet, "/invoices?status=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", w.Code)
	}
}

func TestFinancialReportEndpoint(t *testing.T) {
	e, db := setupServer(t)

	w := doJSON(e, http.MethodGet, "/reports/financial/2024", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var sentinel contract.NoDataResponse
	if err := json.Unmarshal(w.Body.Bytes(), &sentinel); err != nil {
		t.Fatalf("decode sentinel: %v", err)
	}
	if sentinel.Message == "" {
		t.Errorf("empty year must return the no-data sentinel, got %s", w.Body.String())
	}

	company := seedCompany(t, db, "Acme Ltda", validCNPJ)
	invoice := &entity.Invoice{
		Description: "hosting",
		Amount:      decimal.NewFromInt(150),
		DueDate:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Barcode:     sampleBarcode,
		CompanyID:   company.ID,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	w = doJSON(e, http.MethodGet, "/reports/financial/2024", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var report contract.FinancialReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Year != 2024 {
		t.Errorf("year = %d, want 2024", report.Year)
	}
	march, ok := report.Monthly[3]
	if !ok || !march.TotalValue.Equal(decimal.NewFromInt(150)) {
		t.Errorf("unexpected monthly breakdown: %+v", report.Monthly)
	}
	if len(report.TopSuppliers) != 1 || report.TopSuppliers[0].Company != "Acme Ltda" {
		t.Errorf("unexpected ranking: %+v", report.TopSuppliers)
	}

	w = doJSON(e, http.MethodGet, "/reports/financial/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric year, got %d", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	e, db := setupServer(t)
	company := seedCompany(t, db, "Acme Ltda", validCNPJ)
	invoice := &entity.Invoice{
		Description: "hosting",
		Amount:      decimal.NewFromInt(150),
		DueDate:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Barcode:     sampleBarcode,
		CompanyID:   company.ID,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	w := doJSON(e, http.MethodGet, "/reports/export/2024/3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get(echo.HeaderContentType); ct != xlsxContentType {
		t.Errorf("content type = %q, want %q", ct, xlsxContentType)
	}
	disposition := w.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, `attachment; filename="Financial_Report_3_2024.xlsx"`) {
		t.Errorf("unexpected disposition: %q", disposition)
	}
	if w.Body.Len() == 0 {
		t.Error("expected a non-empty workbook body")
	}

	w = doJSON(e, http.MethodGet, "/reports/export/2024", "")
	disposition = w.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, `attachment; filename="Annual_Report_2024.xlsx"`) {
		t.Errorf("unexpected annual disposition: %q", disposition)
	}

	w = doJSON(e, http.MethodGet, "/reports/export/2024/13", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for month out of range, got %d", w.Code)
	}
}
