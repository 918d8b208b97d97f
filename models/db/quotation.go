package dbmodels

import "github.com/shopspring/decimal"

type Quotation struct {
	BaseCompanyModel
	Code        string          `gorm:"type:varchar(100)"`
	Title       string          `gorm:"type:varchar(255)"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	IsConfirmed bool
}
