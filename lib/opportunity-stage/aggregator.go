package opportunitystagehandler

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
)

// StageReached проверяет условия этапа с учетом логического оператора.
// Этап без условий не может быть достигнут
func StageReached(stage dbmodels.StageConfig, results ConditionResultSet) bool {
	if len(stage.Conditions) == 0 {
		return false
	}
	switch stage.LogicalOperator {
	case models.LogicalAnd:
		for _, condition := range stage.Conditions {
			if !results.Contains(condition) {
				return false
			}
		}
		return true
	case models.LogicalOr:
		for _, condition := range stage.Conditions {
			if results.Contains(condition) {
				return true
			}
		}
		return false
	}
	return false
}
