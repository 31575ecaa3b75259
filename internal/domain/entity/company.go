package entity

// Company is an invoice-issuing supplier.
//
// Companies are append-only: there is no update or delete operation, and the
// CNPJ (Brazilian tax id) is enforced unique at the database level.
type Company struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"not null;index"`
	CNPJ string `gorm:"column:cnpj;uniqueIndex;not null"`
}
