package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Opportunity struct {
	BaseCompanyModel
	Code               string          `gorm:"type:varchar(100);index"`
	Title              string          `gorm:"type:varchar(255)"`
	CustomerID         *string         `gorm:"type:varchar(36)"`
	ProductCategoryIDs pq.StringArray  `gorm:"type:text[]"`
	BudgetValue        decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	OpenDate           *time.Time
	CloseDate          *time.Time
	DecisionMakerID    *string `gorm:"type:varchar(36)"`
	LostByOtherReason  bool
	IsDealClose        bool
	IsClosed           bool
	QuotationID        *string `gorm:"type:varchar(36)"`
	Quotation          *Quotation
	SaleOrderID        *string `gorm:"type:varchar(36)"`
	SaleOrder          *SaleOrder
	ProductLines       []OpportunityProductLine `gorm:"foreignKey:OpportunityID"`
	Competitors        []OpportunityCompetitor  `gorm:"foreignKey:OpportunityID"`
	SalePersonID       string                   `gorm:"type:varchar(36)"`
	SalePersonEmail    string                   `gorm:"type:varchar(255)"`
	WinRate            float64
	CurrentStageID     *string `gorm:"type:varchar(36)"`
	CurrentStage       *StageConfig
	StageOutdated      bool `gorm:"index"`
	StageRetryAt       *time.Time
}

type OpportunityProductLine struct {
	BaseTenantModel
	OpportunityID string          `gorm:"type:varchar(36);index"`
	ProductID     string          `gorm:"type:varchar(36)"`
	Description   string          `gorm:"type:varchar(255)"`
	Quantity      decimal.Decimal `gorm:"type:numeric(20,4)"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(20,2)"`
}

type OpportunityCompetitor struct {
	BaseTenantModel
	OpportunityID string `gorm:"type:varchar(36);index"`
	Name          string `gorm:"type:varchar(255)"`
	Strength      string
	Weakness      string
	IsWin         bool
}
