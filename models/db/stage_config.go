package dbmodels

import (
	"sales-pipeline-backend/models"

	"gorm.io/datatypes"
)

// StageConfig - этап воронки продаж, настраиваемый для компании
type StageConfig struct {
	BaseCompanyModel
	Indicator       string                              `gorm:"type:varchar(255)"`
	Description     string                              `gorm:"type:varchar(1000)"`
	WinRate         float64                             `gorm:"index"`
	LogicalOperator models.LogicalOperator              `gorm:"type:varchar(10)"`
	Conditions      datatypes.JSONSlice[StageCondition] `gorm:"type:jsonb"`
	IsClosedLost    bool
	IsDelivery      bool
	IsDealClosed    bool
	IsDefault       bool
}

func (StageConfig) TableName() string {
	return "opportunity_config_stages"
}

// StageConditionProperty - ссылка на условие из справочника
type StageConditionProperty struct {
	ID    string                        `json:"id"`
	Title models.ConditionPropertyTitle `json:"title"`
}

// StageCondition - условие этапа. Сравнивается с результатом вычисления условия по значению
type StageCondition struct {
	ConditionProperty  StageConditionProperty    `json:"condition_property"`
	ComparisonOperator models.ComparisonOperator `json:"comparison_operator"`
	CompareData        string                    `json:"compare_data"`
}
