package dbmodels

import "sales-pipeline-backend/models"

type ConditionProperty struct {
	BaseModel
	Title       models.ConditionPropertyTitle `gorm:"type:varchar(100);uniqueIndex"`
	CompareData string                        `gorm:"type:varchar(50)"`
}

func (ConditionProperty) TableName() string {
	return "opportunity_condition_properties"
}
