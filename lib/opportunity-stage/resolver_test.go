package opportunitystagehandler

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ids(list []dbmodels.StageConfig) []string {
	result := make([]string, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ID)
	}
	return result
}

func TestOrderStages(t *testing.T) {
	customerSet := cond(models.CondCustomer, models.OperatorNotEqual, "0")

	s1 := stage("S1", "company", 10, models.LogicalAnd, customerSet)
	s2 := stage("S2", "company", 0, models.LogicalAnd, customerSet)
	s2.IsClosedLost = true
	s3 := stage("S3", "company", 100, models.LogicalAnd, customerSet)
	s3.IsDealClosed = true
	d := stage("D", "company", 90, models.LogicalAnd, customerSet)
	d.IsDelivery = true

	t.Run(`exclusive stages at the end check`, func(t *testing.T) {
		permutations := [][]dbmodels.StageConfig{
			{s1, s2, s3},
			{s1, s3, s2},
			{s2, s1, s3},
			{s2, s3, s1},
			{s3, s1, s2},
			{s3, s2, s1},
		}
		for _, catalog := range permutations {
			require.Equal(t, []string{"S1", "S2", "S3"}, ids(OrderStages(catalog)))
		}
	})

	t.Run(`delivery between lost and deal check`, func(t *testing.T) {
		require.Equal(t, []string{"S1", "S2", "D", "S3"}, ids(OrderStages([]dbmodels.StageConfig{s3, d, s2, s1})))
	})

	t.Run(`normal stages keep catalog order check`, func(t *testing.T) {
		a := stage("A", "company", 20, models.LogicalAnd, customerSet)
		b := stage("B", "company", 10, models.LogicalAnd, customerSet)
		require.Equal(t, []string{"A", "B", "S1", "S2"}, ids(OrderStages([]dbmodels.StageConfig{s2, a, b, s1})))
	})

	t.Run(`input not modified check`, func(t *testing.T) {
		catalog := []dbmodels.StageConfig{s3, s1}
		OrderStages(catalog)
		require.Equal(t, []string{"S3", "S1"}, ids(catalog))
	})
}

func TestResolve(t *testing.T) {
	customerSet := cond(models.CondCustomer, models.OperatorNotEqual, "0")
	budgetEmpty := cond(models.CondBudget, models.OperatorEqual, "0")
	openDateSet := cond(models.CondOpenDate, models.OperatorNotEqual, "0")

	t.Run(`customer with empty budget selects closed lost check`, func(t *testing.T) {
		opp := opportunity("opp", "company")
		opp.CustomerID = strPtr("customer")
		opp.BudgetValue = decimal.Zero

		s1 := stage("S1", "company", 20, models.LogicalAnd, customerSet)
		s2 := stage("S2", "company", 0, models.LogicalAnd, budgetEmpty)
		s2.IsClosedLost = true

		resolution := Resolve([]dbmodels.StageConfig{s2, s1}, EvaluateAll(presetProperties(), opp))
		require.Equal(t, 1, resolution.Index)
		require.Equal(t, []string{"S1", "S2"}, ids(resolution.Reached))
		require.Equal(t, "S2", resolution.Current().ID)
		require.Equal(t, float64(0), resolution.WinRate)
	})

	t.Run(`last reached index wins check`, func(t *testing.T) {
		opp := opportunity("opp", "company")
		opp.CustomerID = strPtr("customer")

		s1 := stage("S1", "company", 10, models.LogicalAnd, customerSet)
		s2 := stage("S2", "company", 30, models.LogicalAnd, openDateSet)
		s3 := stage("S3", "company", 50, models.LogicalAnd, customerSet)

		resolution := Resolve([]dbmodels.StageConfig{s1, s2, s3}, EvaluateAll(presetProperties(), opp))
		require.Equal(t, 2, resolution.Index)
		require.Equal(t, "S3", resolution.Current().ID)
		require.Equal(t, float64(50), resolution.WinRate)
		// цепочка включает непройденный S2, как и все этапы до текущего
		require.Equal(t, []string{"S1", "S2", "S3"}, ids(resolution.Reached))
	})

	t.Run(`nothing reached check`, func(t *testing.T) {
		s1 := stage("S1", "company", 10, models.LogicalAnd, customerSet)
		resolution := Resolve([]dbmodels.StageConfig{s1}, EvaluateAll(presetProperties(), opportunity("opp", "company")))
		require.Equal(t, -1, resolution.Index)
		require.Empty(t, resolution.Reached)
		require.Nil(t, resolution.Current())
		require.Equal(t, float64(0), resolution.WinRate)
	})

	t.Run(`empty catalog check`, func(t *testing.T) {
		resolution := Resolve(nil, EvaluateAll(presetProperties(), opportunity("opp", "company")))
		require.Equal(t, -1, resolution.Index)
		require.Equal(t, float64(0), resolution.WinRate)
	})

	t.Run(`idempotence check`, func(t *testing.T) {
		opp := opportunity("opp", "company")
		opp.CustomerID = strPtr("customer")
		catalog := []dbmodels.StageConfig{
			stage("S1", "company", 10, models.LogicalAnd, customerSet),
			stage("S2", "company", 40, models.LogicalOr, openDateSet, budgetEmpty),
		}
		first := Resolve(catalog, EvaluateAll(presetProperties(), opp))
		second := Resolve(catalog, EvaluateAll(presetProperties(), opp))
		require.Equal(t, first, second)
	})
}
