package opportunitystagehandler

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
)

func presetProperties() []dbmodels.ConditionProperty {
	result := make([]dbmodels.ConditionProperty, 0, len(models.ConditionPropertyPresets))
	for _, preset := range models.ConditionPropertyPresets {
		result = append(result, dbmodels.ConditionProperty{
			BaseModel:   dbmodels.BaseModel{ID: preset.ID},
			Title:       preset.Title,
			CompareData: preset.CompareData,
		})
	}
	return result
}

func presetID(title models.ConditionPropertyTitle) string {
	for _, preset := range models.ConditionPropertyPresets {
		if preset.Title == title {
			return preset.ID
		}
	}
	return ""
}

func cond(title models.ConditionPropertyTitle, operator models.ComparisonOperator, compareData string) dbmodels.StageCondition {
	return dbmodels.StageCondition{
		ConditionProperty: dbmodels.StageConditionProperty{
			ID:    presetID(title),
			Title: title,
		},
		ComparisonOperator: operator,
		CompareData:        compareData,
	}
}

func stage(id, companyID string, winRate float64, operator models.LogicalOperator, conditions ...dbmodels.StageCondition) dbmodels.StageConfig {
	rec := dbmodels.StageConfig{
		Indicator:       id,
		WinRate:         winRate,
		LogicalOperator: operator,
		Conditions:      conditions,
	}
	rec.ID = id
	rec.TenantID = "tenant"
	rec.CompanyID = companyID
	return rec
}

func opportunity(id, companyID string) dbmodels.Opportunity {
	rec := dbmodels.Opportunity{}
	rec.ID = id
	rec.TenantID = "tenant"
	rec.CompanyID = companyID
	return rec
}

func strPtr(s string) *string {
	return &s
}
