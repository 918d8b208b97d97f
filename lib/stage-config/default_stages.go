package stageconfighandler

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
)

type defaultCondition struct {
	title    models.ConditionPropertyTitle
	operator models.ComparisonOperator
}

type defaultStage struct {
	indicator    string
	winRate      float64
	operator     models.LogicalOperator
	conditions   []defaultCondition
	isClosedLost bool
	isDelivery   bool
	isDealClosed bool
}

var defaultStages = []defaultStage{
	{
		indicator: "Квалификация",
		winRate:   10,
		operator:  models.LogicalAnd,
		conditions: []defaultCondition{
			{models.CondCustomer, models.OperatorNotEqual},
		},
	},
	{
		indicator: "Анализ потребностей",
		winRate:   20,
		operator:  models.LogicalAnd,
		conditions: []defaultCondition{
			{models.CondCustomer, models.OperatorNotEqual},
			{models.CondProductCategory, models.OperatorNotEqual},
			{models.CondDecisionMaker, models.OperatorNotEqual},
		},
	},
	{
		indicator: "Предложение",
		winRate:   40,
		operator:  models.LogicalAnd,
		conditions: []defaultCondition{
			{models.CondProductLineDetail, models.OperatorNotEqual},
			{models.CondBudget, models.OperatorNotEqual},
		},
	},
	{
		indicator: "Переговоры",
		winRate:   60,
		operator:  models.LogicalAnd,
		conditions: []defaultCondition{
			{models.CondQuotationConfirm, models.OperatorEqual},
		},
	},
	{
		indicator: "Сделка проиграна",
		winRate:   0,
		operator:  models.LogicalOr,
		conditions: []defaultCondition{
			{models.CondLostByOtherReason, models.OperatorEqual},
			{models.CondCompetitorWin, models.OperatorEqual},
		},
		isClosedLost: true,
	},
	{
		indicator: "Поставка",
		winRate:   90,
		operator:  models.LogicalOr,
		conditions: []defaultCondition{
			{models.CondSaleOrderStatus, models.OperatorNotEqual},
			{models.CondSaleOrderDelivery, models.OperatorNotEqual},
		},
		isDelivery: true,
	},
	{
		indicator: "Сделка заключена",
		winRate:   100,
		operator:  models.LogicalAnd,
		conditions: []defaultCondition{
			{models.CondCloseDeal, models.OperatorEqual},
		},
		isDealClosed: true,
	},
}

// DefaultStages собирает набор этапов по умолчанию по справочнику условий
func DefaultStages(properties []dbmodels.ConditionProperty) ([]dbmodels.StageConfig, error) {
	propertyMap := make(map[models.ConditionPropertyTitle]dbmodels.ConditionProperty, len(properties))
	for _, property := range properties {
		propertyMap[property.Title] = property
	}
	result := make([]dbmodels.StageConfig, 0, len(defaultStages))
	for _, stage := range defaultStages {
		rec := dbmodels.StageConfig{
			Indicator:       stage.indicator,
			WinRate:         stage.winRate,
			LogicalOperator: stage.operator,
			Conditions:      make([]dbmodels.StageCondition, 0, len(stage.conditions)),
			IsClosedLost:    stage.isClosedLost,
			IsDelivery:      stage.isDelivery,
			IsDealClosed:    stage.isDealClosed,
			IsDefault:       true,
		}
		for _, condition := range stage.conditions {
			property, ok := propertyMap[condition.title]
			if !ok {
				return nil, errors.Errorf("условие %v отсутствует в справочнике", condition.title)
			}
			rec.Conditions = append(rec.Conditions, dbmodels.StageCondition{
				ConditionProperty: dbmodels.StageConditionProperty{
					ID:    property.ID,
					Title: property.Title,
				},
				ComparisonOperator: condition.operator,
				CompareData:        property.CompareData,
			})
		}
		result = append(result, rec)
	}
	return result, nil
}
