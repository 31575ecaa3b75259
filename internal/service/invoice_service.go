package service

import (
	"time"

	"payables/internal/contract"
	"payables/internal/domain/entity"
	"payables/internal/utils"
	"payables/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type InvoiceRepository interface {
	FindByID(id int) (*entity.Invoice, error)
	FindByBarcode(barcode string) (*entity.Invoice, error)
	Filter(f entity.InvoiceFilter) ([]*entity.Invoice, error)
	Save(invoice *entity.Invoice) error
}

type DefaultInvoiceService struct {
	InvoiceRepo InvoiceRepository
	CompanyRepo CompanyRepository
	Validate    *validator.Validate
}

func NewInvoiceService(
	invoiceRepo InvoiceRepository,
	companyRepo CompanyRepository,
	validate *validator.Validate,
) *DefaultInvoiceService {
	return &DefaultInvoiceService{
		InvoiceRepo: invoiceRepo,
		CompanyRepo: companyRepo,
		Validate:    validate,
	}
}

// GetInvoices lists invoices with their owning company, optionally narrowed
// by status (paid/overdue/open) and a case-insensitive company name substring.
func (s *DefaultInvoiceService) GetInvoices(status, companyName string) ([]*contract.InvoiceResponse, apierror.ErrorResponse) {
	switch status {
	case "", entity.StatusPaid, entity.StatusOverdue, entity.StatusOpen:
	default:
		return nil, apierror.InvalidStatusError
	}

	today := utils.TodayUTC()
	invoices, err := s.InvoiceRepo.Filter(entity.InvoiceFilter{
		Status:      status,
		CompanyName: companyName,
		Today:       today,
	})
	if err != nil {
		log.Errorf("failed to fetch invoices: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		resp[i] = toInvoiceResponse(invoice, today)
	}
	return resp, nil
}

func (s *DefaultInvoiceService) CreateInvoice(req *contract.CreateInvoiceRequest) (*contract.InvoiceResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	company, err := s.CompanyRepo.FindByID(req.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch company: %v", err)
		return nil, apierror.InternalServerError
	}

	if company == nil {
		return nil, apierror.CompanyNotFoundError
	}

	existing, err := s.InvoiceRepo.FindByBarcode(req.Barcode)
	if err != nil {
		log.Errorf("failed to check barcode: %v", err)
		return nil, apierror.InternalServerError
	}

	if existing != nil {
		return nil, apierror.DuplicateBarcodeError
	}

	// The datetime tag already vets the format; parse failures here mean a
	// validator/layout mismatch and surface as a plain bad request.
	dueDate, derr := utils.ParseDate(req.DueDate)
	if derr != nil {
		return nil, apierror.MalformedJSONError
	}

	invoice := &entity.Invoice{
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Barcode:     req.Barcode,
		CompanyID:   company.ID,
	}

	if req.PaymentDate != nil {
		paymentDate, perr := utils.ParseDate(*req.PaymentDate)
		if perr != nil {
			return nil, apierror.MalformedJSONError
		}
		invoice.PaymentDate = &paymentDate
	}

	if err := s.InvoiceRepo.Save(invoice); err != nil {
		log.Errorf("failed to save invoice: %v", err)
		return nil, apierror.InternalServerError
	}

	invoice.Company = *company
	return toInvoiceResponse(invoice, utils.TodayUTC()), nil
}

// PayInvoice records the one-shot unpaid to paid transition. Paying an
// already paid invoice is a conflict; the payment date is never overwritten.
func (s *DefaultInvoiceService) PayInvoice(invoiceId int, req *contract.PayInvoiceRequest) (*contract.InvoiceResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	invoice, err := s.InvoiceRepo.FindByID(invoiceId)
	if err != nil {
		log.Errorf("failed to fetch invoice: %v", err)
		return nil, apierror.InternalServerError
	}

	if invoice == nil {
		return nil, apierror.InvoiceNotFoundError
	}

	if invoice.IsPaid() {
		return nil, apierror.InvoiceAlreadyPaid
	}

	paymentDate, perr := utils.ParseDate(req.PaymentDate)
	if perr != nil {
		return nil, apierror.MalformedJSONError
	}

	invoice.PaymentDate = &paymentDate
	if err := s.InvoiceRepo.Save(invoice); err != nil {
		log.Errorf("failed to update invoice: %v", err)
		return nil, apierror.InternalServerError
	}
	return toInvoiceResponse(invoice, utils.TodayUTC()), nil
}

func toInvoiceResponse(invoice *entity.Invoice, today time.Time) *contract.InvoiceResponse {
	var paymentDate *string
	if invoice.PaymentDate != nil {
		formatted := utils.FormatDate(*invoice.PaymentDate)
		paymentDate = &formatted
	}

	var company *contract.CompanyResponse
	if invoice.Company.ID != 0 {
		company = toCompanyResponse(&invoice.Company)
	}

	return &contract.InvoiceResponse{
		ID:          invoice.ID,
		Description: invoice.Description,
		Amount:      invoice.Amount,
		DueDate:     utils.FormatDate(invoice.DueDate),
		PaymentDate: paymentDate,
		Barcode:     invoice.Barcode,
		Status:      invoice.StatusAt(today),
		CreatedAt:   invoice.CreatedAt.UTC().Format(time.RFC3339),
		Company:     company,
	}
}
