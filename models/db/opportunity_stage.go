package dbmodels

type OpportunityStage struct {
	BaseCompanyModel
	OpportunityID string `gorm:"type:varchar(36);index"`
	StageID       string `gorm:"type:varchar(36)"`
	Stage         *StageConfig
	StageOrder    int
	IsCurrent     bool
}
