package dictapimodels

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
)

type ConditionPropertyView struct {
	ID          string                        `json:"id"`
	Title       models.ConditionPropertyTitle `json:"title"`
	CompareData string                        `json:"compare_data"` // допустимое значение для сравнения
	Operators   []models.ComparisonOperator   `json:"operators"`
}

func ConditionPropertyConvert(rec dbmodels.ConditionProperty) ConditionPropertyView {
	return ConditionPropertyView{
		ID:          rec.ID,
		Title:       rec.Title,
		CompareData: rec.CompareData,
		Operators:   []models.ComparisonOperator{models.OperatorEqual, models.OperatorNotEqual},
	}
}
