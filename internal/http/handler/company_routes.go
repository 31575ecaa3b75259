package handler

import (
	"net/http"

	"payables/internal/contract"
	"payables/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CompanyService interface {
	GetAllCompanies() ([]*contract.CompanyResponse, apierror.ErrorResponse)
	CreateCompany(req *contract.CreateCompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse)
}

type DefaultCompanyRoute struct {
	CompanyService CompanyService
}

func NewCompanyDefault(companyService CompanyService) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{CompanyService: companyService}
}

func (h *DefaultCompanyRoute) GetCompanies(c echo.Context) error {
	companies, err := h.CompanyService.GetAllCompanies()
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"companies": companies}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultCompanyRoute) CreateCompany(c echo.Context) error {
	var req contract.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	company, apierr := h.CompanyService.CreateCompany(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, company)
}
