package contract

type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	// Custom validators like 'cnpj' work via the Validator engine,
	// so just keeping the tag string here is fine.
	CNPJ string `json:"cnpj" validate:"required,cnpj"`
}

type CompanyResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}
