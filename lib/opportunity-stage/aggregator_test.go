package opportunitystagehandler

import (
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageReached(t *testing.T) {
	customerSet := cond(models.CondCustomer, models.OperatorNotEqual, "0")
	budgetEmpty := cond(models.CondBudget, models.OperatorEqual, "0")
	dealClosed := cond(models.CondCloseDeal, models.OperatorEqual, "true")

	results := ConditionResultSet{
		customerSet: {},
		budgetEmpty: {},
	}

	t.Run(`AND check`, func(t *testing.T) {
		s := stage("s", "company", 10, models.LogicalAnd, customerSet, budgetEmpty)
		require.True(t, StageReached(s, results))

		s = stage("s", "company", 10, models.LogicalAnd, customerSet, budgetEmpty, dealClosed)
		require.False(t, StageReached(s, results))

		// без любого из обязательных условий этап не достигнут
		for _, missing := range []dbmodels.StageCondition{customerSet, budgetEmpty} {
			partial := ConditionResultSet{}
			for k := range results {
				if k != missing {
					partial[k] = struct{}{}
				}
			}
			s = stage("s", "company", 10, models.LogicalAnd, customerSet, budgetEmpty)
			require.False(t, StageReached(s, partial))
		}
	})

	t.Run(`OR check`, func(t *testing.T) {
		s := stage("s", "company", 10, models.LogicalOr, dealClosed, budgetEmpty)
		require.True(t, StageReached(s, results))

		s = stage("s", "company", 10, models.LogicalOr, dealClosed)
		require.False(t, StageReached(s, results))
	})

	t.Run(`no conditions check`, func(t *testing.T) {
		require.False(t, StageReached(stage("s", "company", 10, models.LogicalAnd), results))
		require.False(t, StageReached(stage("s", "company", 10, models.LogicalOr), results))
	})

	t.Run(`unknown operator check`, func(t *testing.T) {
		require.False(t, StageReached(stage("s", "company", 10, "XOR", customerSet), results))
	})
}
