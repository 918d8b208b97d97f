package dbmodels

import (
	"sales-pipeline-backend/models"

	"github.com/shopspring/decimal"
)

type SaleOrder struct {
	BaseCompanyModel
	Code           string                 `gorm:"type:varchar(100)"`
	Title          string                 `gorm:"type:varchar(255)"`
	TotalAmount    decimal.Decimal        `gorm:"type:numeric(20,2);not null;default:0"`
	SystemStatus   models.SaleOrderStatus `gorm:"type:varchar(50)"`
	DeliveryStatus models.DeliveryStatus  `gorm:"type:varchar(50)"`
}
