package contract

import "github.com/shopspring/decimal"

type CreateInvoiceRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=300"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	DueDate     string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Barcode     string          `json:"barcode" validate:"required,barcode"`
	CompanyID   int             `json:"company_id" validate:"required,gt=0"`

	// Optional: an invoice can be registered already paid.
	PaymentDate *string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

type PayInvoiceRequest struct {
	PaymentDate string `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

type InvoiceResponse struct {
	ID          int              `json:"id"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	DueDate     string           `json:"due_date"`
	PaymentDate *string          `json:"payment_date"`
	Barcode     string           `json:"barcode"`
	Status      string           `json:"status"`
	CreatedAt   string           `json:"created_at"`
	Company     *CompanyResponse `json:"company"`
}
