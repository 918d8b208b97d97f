package opportunitystagehandler

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
)

// ConditionResultSet - результаты вычисления условий по сделке.
// Ключ сравнивается структурно: ид и название условия, оператор, значение
type ConditionResultSet map[dbmodels.StageCondition]struct{}

func (s ConditionResultSet) Contains(condition dbmodels.StageCondition) bool {
	_, ok := s[condition]
	return ok
}

type conditionFunc func(opp dbmodels.Opportunity) (models.ComparisonOperator, string)

var conditionFuncs = map[models.ConditionPropertyTitle]conditionFunc{
	models.CondCustomer: hasValue(func(opp dbmodels.Opportunity) bool {
		return opp.CustomerID != nil && *opp.CustomerID != ""
	}),
	models.CondProductCategory: hasValue(func(opp dbmodels.Opportunity) bool {
		return len(opp.ProductCategoryIDs) > 0
	}),
	models.CondBudget: hasValue(func(opp dbmodels.Opportunity) bool {
		return !opp.BudgetValue.IsZero()
	}),
	models.CondOpenDate: hasValue(func(opp dbmodels.Opportunity) bool {
		return opp.OpenDate != nil && !opp.OpenDate.IsZero()
	}),
	models.CondCloseDate: hasValue(func(opp dbmodels.Opportunity) bool {
		return opp.CloseDate != nil && !opp.CloseDate.IsZero()
	}),
	models.CondDecisionMaker: hasValue(func(opp dbmodels.Opportunity) bool {
		return opp.DecisionMakerID != nil && *opp.DecisionMakerID != ""
	}),
	models.CondLostByOtherReason: isTrue(func(opp dbmodels.Opportunity) bool {
		return opp.LostByOtherReason
	}),
	models.CondProductLineDetail: hasValue(func(opp dbmodels.Opportunity) bool {
		return len(opp.ProductLines) > 0
	}),
	models.CondCompetitorWin: isTrue(func(opp dbmodels.Opportunity) bool {
		for _, competitor := range opp.Competitors {
			if competitor.IsWin {
				return true
			}
		}
		return false
	}),
	models.CondQuotationConfirm: isTrue(func(opp dbmodels.Opportunity) bool {
		return opp.Quotation != nil && opp.Quotation.IsConfirmed
	}),
	models.CondSaleOrderStatus: hasValue(func(opp dbmodels.Opportunity) bool {
		return opp.SaleOrder != nil && opp.SaleOrder.SystemStatus.IsApproved()
	}),
	models.CondSaleOrderDelivery: hasValue(func(opp dbmodels.Opportunity) bool {
		return opp.SaleOrder != nil && opp.SaleOrder.DeliveryStatus.IsStarted()
	}),
	models.CondCloseDeal: isTrue(func(opp dbmodels.Opportunity) bool {
		return opp.IsDealClose
	}),
}

// hasValue: "≠ 0" если значение заполнено, иначе "= 0"
func hasValue(check func(opp dbmodels.Opportunity) bool) conditionFunc {
	return func(opp dbmodels.Opportunity) (models.ComparisonOperator, string) {
		if check(opp) {
			return models.OperatorNotEqual, models.CompareDataEmpty
		}
		return models.OperatorEqual, models.CompareDataEmpty
	}
}

// isTrue: "= true" если признак установлен, иначе "≠ true"
func isTrue(check func(opp dbmodels.Opportunity) bool) conditionFunc {
	return func(opp dbmodels.Opportunity) (models.ComparisonOperator, string) {
		if check(opp) {
			return models.OperatorEqual, models.CompareDataTrue
		}
		return models.OperatorNotEqual, models.CompareDataTrue
	}
}

func IsKnownCondition(title models.ConditionPropertyTitle) bool {
	_, ok := conditionFuncs[title]
	return ok
}

// EvaluateProperty вычисляет условие по текущему состоянию сделки.
// Для неизвестного условия результат пустой
func EvaluateProperty(property dbmodels.ConditionProperty, opp dbmodels.Opportunity) []dbmodels.StageCondition {
	fn, ok := conditionFuncs[property.Title]
	if !ok {
		return []dbmodels.StageCondition{}
	}
	operator, compareData := fn(opp)
	return []dbmodels.StageCondition{
		{
			ConditionProperty: dbmodels.StageConditionProperty{
				ID:    property.ID,
				Title: property.Title,
			},
			ComparisonOperator: operator,
			CompareData:        compareData,
		},
	}
}

func EvaluateAll(properties []dbmodels.ConditionProperty, opp dbmodels.Opportunity) ConditionResultSet {
	result := make(ConditionResultSet, len(properties))
	for _, property := range properties {
		for _, condition := range EvaluateProperty(property, opp) {
			result[condition] = struct{}{}
		}
	}
	return result
}
