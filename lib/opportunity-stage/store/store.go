package opportunitystagestore

import (
	dbmodels "sales-pipeline-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	DeleteByOpportunity(tenantID, opportunityID string) error
	CreateList(list []dbmodels.OpportunityStage) error
	List(tenantID, opportunityID string) (list []dbmodels.OpportunityStage, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) DeleteByOpportunity(tenantID, opportunityID string) error {
	return i.db.
		Where("tenant_id = ?", tenantID).
		Where("opportunity_id = ?", opportunityID).
		Delete(&dbmodels.OpportunityStage{}).
		Error
}

func (i impl) CreateList(list []dbmodels.OpportunityStage) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Omit("Stage").
		CreateInBatches(&list, 100).
		Error
}

func (i impl) List(tenantID, opportunityID string) (list []dbmodels.OpportunityStage, err error) {
	list = []dbmodels.OpportunityStage{}
	err = i.db.
		Where("tenant_id = ?", tenantID).
		Where("opportunity_id = ?", opportunityID).
		Order("stage_order").
		Preload("Stage").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
