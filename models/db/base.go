package dbmodels

import (
	"time"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BaseTenantModel struct {
	BaseModel
	TenantID string `gorm:"type:varchar(36);index" json:"tenant_id"`
}

// BaseCompanyModel - запись, принадлежащая компании внутри тенанта
type BaseCompanyModel struct {
	BaseTenantModel
	CompanyID string `gorm:"type:varchar(36);index" json:"company_id"`
}
