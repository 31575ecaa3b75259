package repository

import (
	"errors"
	"strings"
	"time"

	"payables/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultInvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *DefaultInvoiceRepository {
	return &DefaultInvoiceRepository{db: db}
}

func (r *DefaultInvoiceRepository) FindByID(id int) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.Joins("Company").First(&invoice, "invoices.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *DefaultInvoiceRepository) FindByBarcode(barcode string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.Where("barcode = ?", barcode).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Filter returns the invoice×company row set restricted by f. Every returned
// invoice carries its owning company. No ordering is guaranteed.
func (r *DefaultInvoiceRepository) Filter(f entity.InvoiceFilter) ([]*entity.Invoice, error) {
	query := r.db.Joins("Company")

	if f.CompanyName != "" {
		pattern := "%" + strings.ToLower(f.CompanyName) + "%"
		query = query.Where(`LOWER("Company".name) LIKE ?`, pattern)
	}

	switch f.Status {
	case entity.StatusPaid:
		query = query.Where("payment_date IS NOT NULL")
	case entity.StatusOverdue:
		query = query.Where("payment_date IS NULL AND due_date < ?", f.Today)
	case entity.StatusOpen:
		query = query.Where("payment_date IS NULL AND due_date >= ?", f.Today)
	}

	// Year/month narrowing uses half-open ranges on due_date instead of
	// dialect-specific date extraction.
	if f.Year > 0 {
		start := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(1, 0, 0)
		if f.Month > 0 {
			start = time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		}
		query = query.Where("due_date >= ? AND due_date < ?", start, end)
	}

	var invoices []*entity.Invoice
	err := query.Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save writes the invoice row only; the company relation is read-only here
// and must never be upserted through an invoice write.
func (r *DefaultInvoiceRepository) Save(invoice *entity.Invoice) error {
	return r.db.Omit("Company").Save(invoice).Error
}
