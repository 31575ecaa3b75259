package service

import (
	"bytes"
	"fmt"
	"sort"

	"payables/internal/contract"
	"payables/internal/domain/entity"
	"payables/internal/utils"
	"payables/internal/utils/apierror"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	topSupplierLimit = 5
	exportSheetName  = "Report"
)

// exportHeader is the fixed column order of the spreadsheet export.
var exportHeader = []string{"Company", "Description", "Amount", "Due Date", "Payment Date", "Status", "Barcode"}

type DefaultReportService struct {
	InvoiceRepo InvoiceRepository
}

func NewReportService(invoiceRepo InvoiceRepository) *DefaultReportService {
	return &DefaultReportService{InvoiceRepo: invoiceRepo}
}

// BuildFinancialReport aggregates all invoices due in the given year into a
// per-month breakdown and a top-5 supplier ranking.
//
// A year with no invoices returns (nil, nil); the handler maps that to the
// no-data sentinel instead of a report full of zeroed buckets.
func (s *DefaultReportService) BuildFinancialReport(year int) (*contract.FinancialReportResponse, apierror.ErrorResponse) {
	invoices, err := s.InvoiceRepo.Filter(entity.InvoiceFilter{Year: year})
	if err != nil {
		log.Errorf("failed to fetch invoices for report: %v", err)
		return nil, apierror.InternalServerError
	}

	if len(invoices) == 0 {
		return nil, nil
	}

	// Single pass: month buckets keyed 1-12 (only months present in the
	// data), plus running totals per company for the ranking.
	monthly := make(map[int]*contract.MonthSummary)
	supplierTotals := make(map[string]decimal.Decimal)

	for _, invoice := range invoices {
		month := int(invoice.DueDate.Month())
		summary, ok := monthly[month]
		if !ok {
			summary = &contract.MonthSummary{}
			monthly[month] = summary
		}

		summary.TotalValue = summary.TotalValue.Add(invoice.Amount)
		summary.Count++
		if invoice.IsPaid() {
			summary.PaidCount++
		}

		name := invoice.Company.Name
		supplierTotals[name] = supplierTotals[name].Add(invoice.Amount)
	}

	return &contract.FinancialReportResponse{
		Year:         year,
		Monthly:      monthly,
		TopSuppliers: rankSuppliers(supplierTotals, topSupplierLimit),
	}, nil
}

// rankSuppliers orders companies by summed amount descending. Equal sums are
// broken by company name ascending so the ranking is deterministic.
func rankSuppliers(totals map[string]decimal.Decimal, limit int) []contract.SupplierTotal {
	ranked := make([]contract.SupplierTotal, 0, len(totals))
	for name, total := range totals {
		ranked = append(ranked, contract.SupplierTotal{Company: name, TotalValue: total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].TotalValue.Cmp(ranked[j].TotalValue)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].Company < ranked[j].Company
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ExportSpreadsheet renders the invoices due in the given year (narrowed to
// one month when month > 0) as an xlsx workbook built entirely in memory.
// An empty row set still yields a valid workbook with the header row.
func (s *DefaultReportService) ExportSpreadsheet(year, month int) ([]byte, string, apierror.ErrorResponse) {
	invoices, err := s.InvoiceRepo.Filter(entity.InvoiceFilter{Year: year, Month: month})
	if err != nil {
		log.Errorf("failed to fetch invoices for export: %v", err)
		return nil, "", apierror.InternalServerError
	}

	f := excelize.NewFile()
	defer f.Close()

	index, xerr := f.NewSheet(exportSheetName)
	if xerr != nil {
		log.Errorf("failed to create export sheet: %v", xerr)
		return nil, "", apierror.InternalServerError
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, heading := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheetName, cell, heading)
	}

	for row, invoice := range invoices {
		statusLabel := "Pending"
		paymentDate := ""
		if invoice.IsPaid() {
			statusLabel = "Paid"
			paymentDate = utils.FormatDate(*invoice.PaymentDate)
		}

		amount, _ := invoice.Amount.Float64()
		values := []any{
			invoice.Company.Name,
			invoice.Description,
			amount,
			utils.FormatDate(invoice.DueDate),
			paymentDate,
			statusLabel,
			invoice.Barcode,
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheetName, cell, value)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		log.Errorf("failed to write export workbook: %v", err)
		return nil, "", apierror.InternalServerError
	}

	filename := fmt.Sprintf("Annual_Report_%d.xlsx", year)
	if month > 0 {
		filename = fmt.Sprintf("Financial_Report_%d_%d.xlsx", month, year)
	}
	return buf.Bytes(), filename, nil
}
