package service

import (
	"payables/internal/contract"
	"payables/internal/domain/entity"
	"payables/internal/utils"
	"payables/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type CompanyRepository interface {
	FindAll() ([]*entity.Company, error)
	FindByID(id int) (*entity.Company, error)
	FindByCNPJ(cnpj string) (*entity.Company, error)
	Save(company *entity.Company) error
}

type DefaultCompanyService struct {
	CompanyRepo CompanyRepository
	Validate    *validator.Validate
}

func NewCompanyService(companyRepo CompanyRepository, validate *validator.Validate) *DefaultCompanyService {
	return &DefaultCompanyService{
		CompanyRepo: companyRepo,
		Validate:    validate,
	}
}

func (s *DefaultCompanyService) GetAllCompanies() ([]*contract.CompanyResponse, apierror.ErrorResponse) {
	companies, err := s.CompanyRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch companies: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.CompanyResponse, len(companies))
	for i, company := range companies {
		resp[i] = toCompanyResponse(company)
	}
	return resp, nil
}

func (s *DefaultCompanyService) CreateCompany(req *contract.CreateCompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	existing, err := s.CompanyRepo.FindByCNPJ(req.CNPJ)
	if err != nil {
		log.Errorf("failed to check CNPJ: %v", err)
		return nil, apierror.InternalServerError
	}

	if existing != nil {
		return nil, apierror.DuplicateCNPJError
	}

	company := &entity.Company{
		Name: req.Name,
		CNPJ: req.CNPJ,
	}

	// The unique index on cnpj is the real guard; the lookup above only
	// provides a friendlier error for the common case.
	if err := s.CompanyRepo.Save(company); err != nil {
		log.Errorf("failed to save company: %v", err)
		return nil, apierror.InternalServerError
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(company *entity.Company) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		ID:   company.ID,
		Name: company.Name,
		CNPJ: company.CNPJ,
	}
}
