package contract

import "github.com/shopspring/decimal"

// MonthSummary aggregates the invoices due in one calendar month.
type MonthSummary struct {
	TotalValue decimal.Decimal `json:"total_value"`
	Count      int             `json:"count"`
	PaidCount  int             `json:"paid_count"`
}

// SupplierTotal is one entry of the top-supplier ranking. The ranking is a
// slice (not a map) so the descending order survives JSON serialization.
type SupplierTotal struct {
	Company    string          `json:"company"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type FinancialReportResponse struct {
	Year         int                   `json:"year"`
	Monthly      map[int]*MonthSummary `json:"monthly"`
	TopSuppliers []SupplierTotal       `json:"top_suppliers"`
}

// NoDataResponse is the sentinel returned when a requested year has no
// invoices at all. It is deliberately distinct from an empty report.
type NoDataResponse struct {
	Message string `json:"message"`
}
