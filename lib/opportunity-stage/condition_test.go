package opportunitystagehandler

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func evaluate(title models.ConditionPropertyTitle, opp dbmodels.Opportunity) dbmodels.StageCondition {
	property := dbmodels.ConditionProperty{
		BaseModel: dbmodels.BaseModel{ID: presetID(title)},
		Title:     title,
	}
	results := EvaluateProperty(property, opp)
	if len(results) != 1 {
		return dbmodels.StageCondition{}
	}
	return results[0]
}

func TestEvaluateProperty(t *testing.T) {
	t.Run(`empty opportunity check`, func(t *testing.T) {
		opp := opportunity("opp", "company")
		require.Equal(t, cond(models.CondCustomer, models.OperatorEqual, "0"), evaluate(models.CondCustomer, opp))
		require.Equal(t, cond(models.CondProductCategory, models.OperatorEqual, "0"), evaluate(models.CondProductCategory, opp))
		require.Equal(t, cond(models.CondBudget, models.OperatorEqual, "0"), evaluate(models.CondBudget, opp))
		require.Equal(t, cond(models.CondOpenDate, models.OperatorEqual, "0"), evaluate(models.CondOpenDate, opp))
		require.Equal(t, cond(models.CondCloseDate, models.OperatorEqual, "0"), evaluate(models.CondCloseDate, opp))
		require.Equal(t, cond(models.CondDecisionMaker, models.OperatorEqual, "0"), evaluate(models.CondDecisionMaker, opp))
		require.Equal(t, cond(models.CondLostByOtherReason, models.OperatorNotEqual, "true"), evaluate(models.CondLostByOtherReason, opp))
		require.Equal(t, cond(models.CondProductLineDetail, models.OperatorEqual, "0"), evaluate(models.CondProductLineDetail, opp))
		require.Equal(t, cond(models.CondCompetitorWin, models.OperatorNotEqual, "true"), evaluate(models.CondCompetitorWin, opp))
		require.Equal(t, cond(models.CondQuotationConfirm, models.OperatorNotEqual, "true"), evaluate(models.CondQuotationConfirm, opp))
		require.Equal(t, cond(models.CondSaleOrderStatus, models.OperatorEqual, "0"), evaluate(models.CondSaleOrderStatus, opp))
		require.Equal(t, cond(models.CondSaleOrderDelivery, models.OperatorEqual, "0"), evaluate(models.CondSaleOrderDelivery, opp))
		require.Equal(t, cond(models.CondCloseDeal, models.OperatorNotEqual, "true"), evaluate(models.CondCloseDeal, opp))
	})

	t.Run(`filled opportunity check`, func(t *testing.T) {
		now := time.Now()
		opp := opportunity("opp", "company")
		opp.CustomerID = strPtr("customer")
		opp.ProductCategoryIDs = []string{"category"}
		opp.BudgetValue = decimal.NewFromInt(1000)
		opp.OpenDate = &now
		opp.CloseDate = &now
		opp.DecisionMakerID = strPtr("person")
		opp.LostByOtherReason = true
		opp.ProductLines = []dbmodels.OpportunityProductLine{{ProductID: "product"}}
		opp.Competitors = []dbmodels.OpportunityCompetitor{{Name: "first"}, {Name: "second", IsWin: true}}
		opp.Quotation = &dbmodels.Quotation{IsConfirmed: true}
		opp.SaleOrder = &dbmodels.SaleOrder{
			SystemStatus:   models.SaleOrderAdded,
			DeliveryStatus: models.DeliveryPartiallyDelivered,
		}
		opp.IsDealClose = true

		require.Equal(t, cond(models.CondCustomer, models.OperatorNotEqual, "0"), evaluate(models.CondCustomer, opp))
		require.Equal(t, cond(models.CondProductCategory, models.OperatorNotEqual, "0"), evaluate(models.CondProductCategory, opp))
		require.Equal(t, cond(models.CondBudget, models.OperatorNotEqual, "0"), evaluate(models.CondBudget, opp))
		require.Equal(t, cond(models.CondOpenDate, models.OperatorNotEqual, "0"), evaluate(models.CondOpenDate, opp))
		require.Equal(t, cond(models.CondCloseDate, models.OperatorNotEqual, "0"), evaluate(models.CondCloseDate, opp))
		require.Equal(t, cond(models.CondDecisionMaker, models.OperatorNotEqual, "0"), evaluate(models.CondDecisionMaker, opp))
		require.Equal(t, cond(models.CondLostByOtherReason, models.OperatorEqual, "true"), evaluate(models.CondLostByOtherReason, opp))
		require.Equal(t, cond(models.CondProductLineDetail, models.OperatorNotEqual, "0"), evaluate(models.CondProductLineDetail, opp))
		require.Equal(t, cond(models.CondCompetitorWin, models.OperatorEqual, "true"), evaluate(models.CondCompetitorWin, opp))
		require.Equal(t, cond(models.CondQuotationConfirm, models.OperatorEqual, "true"), evaluate(models.CondQuotationConfirm, opp))
		require.Equal(t, cond(models.CondSaleOrderStatus, models.OperatorNotEqual, "0"), evaluate(models.CondSaleOrderStatus, opp))
		require.Equal(t, cond(models.CondSaleOrderDelivery, models.OperatorNotEqual, "0"), evaluate(models.CondSaleOrderDelivery, opp))
		require.Equal(t, cond(models.CondCloseDeal, models.OperatorEqual, "true"), evaluate(models.CondCloseDeal, opp))
	})

	t.Run(`sale order statuses check`, func(t *testing.T) {
		opp := opportunity("opp", "company")
		opp.SaleOrder = &dbmodels.SaleOrder{
			SystemStatus:   models.SaleOrderCreated,
			DeliveryStatus: models.DeliveryWaiting,
		}
		require.Equal(t, models.OperatorEqual, evaluate(models.CondSaleOrderStatus, opp).ComparisonOperator)
		require.Equal(t, models.OperatorEqual, evaluate(models.CondSaleOrderDelivery, opp).ComparisonOperator)

		opp.SaleOrder.SystemStatus = models.SaleOrderFinished
		opp.SaleOrder.DeliveryStatus = models.DeliveryDelivered
		require.Equal(t, models.OperatorNotEqual, evaluate(models.CondSaleOrderStatus, opp).ComparisonOperator)
		require.Equal(t, models.OperatorNotEqual, evaluate(models.CondSaleOrderDelivery, opp).ComparisonOperator)
	})

	t.Run(`unconfirmed quotation check`, func(t *testing.T) {
		opp := opportunity("opp", "company")
		opp.Quotation = &dbmodels.Quotation{}
		require.Equal(t, models.OperatorNotEqual, evaluate(models.CondQuotationConfirm, opp).ComparisonOperator)
	})

	t.Run(`unknown property check`, func(t *testing.T) {
		property := dbmodels.ConditionProperty{Title: "Unknown"}
		require.Empty(t, EvaluateProperty(property, opportunity("opp", "company")))
		require.False(t, IsKnownCondition("Unknown"))
		require.True(t, IsKnownCondition(models.CondBudget))
	})

	t.Run(`all presets are known check`, func(t *testing.T) {
		for _, preset := range models.ConditionPropertyPresets {
			require.True(t, IsKnownCondition(preset.Title), preset.Title)
		}
	})
}

func TestEvaluateAll(t *testing.T) {
	t.Run(`one result per property check`, func(t *testing.T) {
		properties := presetProperties()
		properties = append(properties, dbmodels.ConditionProperty{Title: "Unknown"})
		results := EvaluateAll(properties, opportunity("opp", "company"))
		require.Len(t, results, len(models.ConditionPropertyPresets))
		require.True(t, results.Contains(cond(models.CondBudget, models.OperatorEqual, "0")))
		require.False(t, results.Contains(cond(models.CondBudget, models.OperatorNotEqual, "0")))
	})

	t.Run(`structural match needs property id check`, func(t *testing.T) {
		results := EvaluateAll(presetProperties(), opportunity("opp", "company"))
		other := cond(models.CondBudget, models.OperatorEqual, "0")
		other.ConditionProperty.ID = "other-id"
		require.False(t, results.Contains(other))
	})
}
