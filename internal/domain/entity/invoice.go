package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses derived from payment/due dates. These are never stored;
// they are computed against an evaluation date.
const (
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
	StatusOpen    = "open"
)

// Invoice is a payable record (boleto) owned by exactly one Company.
//
// PaymentDate is the tri-state carrier for payment: nil means unpaid, a
// non-nil value means paid on that date. Once set it is never cleared.
type Invoice struct {
	ID          int             `gorm:"primaryKey"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DueDate     time.Time       `gorm:"not null;index"`
	PaymentDate *time.Time
	Barcode     string    `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	CompanyID   int       `gorm:"not null"` // References: companies(id)

	// Relations
	Company Company `gorm:"foreignKey:CompanyID;references:ID"`
}

func (i *Invoice) IsPaid() bool {
	return i.PaymentDate != nil
}

// StatusAt classifies the invoice against the given evaluation date.
// Exactly one of paid/overdue/open applies at any instant.
func (i *Invoice) StatusAt(today time.Time) string {
	if i.IsPaid() {
		return StatusPaid
	}
	if i.DueDate.Before(today) {
		return StatusOverdue
	}
	return StatusOpen
}

// InvoiceFilter narrows the invoice×company row set. Zero values mean
// "no filter" (Month is only meaningful together with Year).
type InvoiceFilter struct {
	Status      string
	CompanyName string
	Year        int
	Month       int
	Today       time.Time
}
