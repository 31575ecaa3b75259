package handler

import (
	"net/http"
	"strconv"

	"payables/internal/contract"
	"payables/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type InvoiceService interface {
	GetInvoices(status, companyName string) ([]*contract.InvoiceResponse, apierror.ErrorResponse)
	CreateInvoice(req *contract.CreateInvoiceRequest) (*contract.InvoiceResponse, apierror.ErrorResponse)
	PayInvoice(invoiceId int, req *contract.PayInvoiceRequest) (*contract.InvoiceResponse, apierror.ErrorResponse)
}

type DefaultInvoiceRoute struct {
	InvoiceService InvoiceService
}

func NewInvoiceDefault(invoiceService InvoiceService) *DefaultInvoiceRoute {
	return &DefaultInvoiceRoute{InvoiceService: invoiceService}
}

func (h *DefaultInvoiceRoute) GetInvoices(c echo.Context) error {
	status := c.QueryParam("status")
	companyName := c.QueryParam("company_name")

	invoices, apierr := h.InvoiceService.GetInvoices(status, companyName)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"invoices": invoices}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultInvoiceRoute) CreateInvoice(c echo.Context) error {
	var req contract.CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	invoice, apierr := h.InvoiceService.CreateInvoice(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, invoice)
}

func (h *DefaultInvoiceRoute) PayInvoice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.PayInvoiceRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	invoice, apierr := h.InvoiceService.PayInvoice(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, invoice)
}
