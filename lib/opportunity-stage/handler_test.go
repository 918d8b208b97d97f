package opportunitystagehandler

import (
	"context"
	conditionpropertystore "sales-pipeline-backend/lib/dicts/condition-property/store"
	"sales-pipeline-backend/lib/metrics"
	opportunitystagestore "sales-pipeline-backend/lib/opportunity-stage/store"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	stageconfigstore "sales-pipeline-backend/lib/stage-config/store"
	"sales-pipeline-backend/lib/utils/lock"
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOpportunityStore struct {
	opportunitystore.Provider
	recs    map[string]*dbmodels.Opportunity
	updates []map[string]interface{}
}

func (f *fakeOpportunityStore) GetForUpdate(tenantID, id string) (*dbmodels.Opportunity, error) {
	rec, ok := f.recs[id]
	if !ok || rec.TenantID != tenantID {
		return nil, nil
	}
	copyRec := *rec
	return &copyRec, nil
}

func (f *fakeOpportunityStore) Update(tenantID, id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	rec := f.recs[id]
	if winRate, ok := updMap["win_rate"]; ok {
		rec.WinRate = winRate.(float64)
	}
	if stageID, ok := updMap["current_stage_id"]; ok {
		rec.CurrentStageID = stageID.(*string)
	}
	if outdated, ok := updMap["stage_outdated"]; ok {
		rec.StageOutdated = outdated.(bool)
	}
	return nil
}

type fakeStageConfigStore struct {
	stageconfigstore.Provider
	list []dbmodels.StageConfig
}

func (f *fakeStageConfigStore) ListForShare(tenantID, companyID string) ([]dbmodels.StageConfig, error) {
	return f.list, nil
}

type fakeOpportunityStageStore struct {
	opportunitystagestore.Provider
	rows    map[string][]dbmodels.OpportunityStage
	deletes int
}

func (f *fakeOpportunityStageStore) DeleteByOpportunity(tenantID, opportunityID string) error {
	f.deletes++
	delete(f.rows, opportunityID)
	return nil
}

func (f *fakeOpportunityStageStore) CreateList(list []dbmodels.OpportunityStage) error {
	for _, row := range list {
		f.rows[row.OpportunityID] = append(f.rows[row.OpportunityID], row)
	}
	return nil
}

func (f *fakeOpportunityStageStore) List(tenantID, opportunityID string) ([]dbmodels.OpportunityStage, error) {
	return f.rows[opportunityID], nil
}

type fakeConditionPropertyStore struct {
	conditionpropertystore.Provider
}

func (f fakeConditionPropertyStore) List() ([]dbmodels.ConditionProperty, error) {
	return presetProperties(), nil
}

type fakeNotifier struct {
	sent chan string
}

func (f fakeNotifier) StageReached(opp dbmodels.Opportunity, stage dbmodels.StageConfig) error {
	f.sent <- stage.ID
	return nil
}

type testEnv struct {
	handler          impl
	opportunity      *fakeOpportunityStore
	stageConfig      *fakeStageConfigStore
	opportunityStage *fakeOpportunityStageStore
	notifier         fakeNotifier
}

func newTestEnv(opps ...dbmodels.Opportunity) *testEnv {
	env := &testEnv{
		opportunity:      &fakeOpportunityStore{recs: map[string]*dbmodels.Opportunity{}},
		stageConfig:      &fakeStageConfigStore{},
		opportunityStage: &fakeOpportunityStageStore{rows: map[string][]dbmodels.OpportunityStage{}},
		notifier:         fakeNotifier{sent: make(chan string, 10)},
	}
	for k := range opps {
		opp := opps[k]
		env.opportunity.recs[opp.ID] = &opp
	}
	s := stores{
		opportunity:       env.opportunity,
		stageConfig:       env.stageConfig,
		opportunityStage:  env.opportunityStage,
		conditionProperty: fakeConditionPropertyStore{},
	}
	env.handler = impl{
		storesFn: func(tx *gorm.DB) stores { return s },
		runTx: func(fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		lockWait: 200 * time.Millisecond,
		notifier: env.notifier,
	}
	return env
}

func TestRecompute(t *testing.T) {
	customerSet := cond(models.CondCustomer, models.OperatorNotEqual, "0")
	budgetEmpty := cond(models.CondBudget, models.OperatorEqual, "0")

	t.Run(`customer with empty budget check`, func(t *testing.T) {
		opp := opportunity("opp-1", "company")
		opp.CustomerID = strPtr("customer")
		env := newTestEnv(opp)
		s1 := stage("S1", "company", 20, models.LogicalAnd, customerSet)
		s2 := stage("S2", "company", 0, models.LogicalAnd, budgetEmpty)
		s2.IsClosedLost = true
		env.stageConfig.list = []dbmodels.StageConfig{s2, s1}

		view, err := env.handler.Recompute(context.Background(), "tenant", "opp-1")
		require.Nil(t, err)
		require.Equal(t, "S2", view.CurrentStageID)
		require.Equal(t, float64(0), view.WinRate)
		require.Len(t, view.Stages, 2)
		require.Equal(t, "S1", view.Stages[0].StageID)
		require.False(t, view.Stages[0].IsCurrent)
		require.True(t, view.Stages[1].IsCurrent)

		rows := env.opportunityStage.rows["opp-1"]
		require.Len(t, rows, 2)
		for k, row := range rows {
			require.Equal(t, k, row.StageOrder)
			require.Equal(t, "company", row.CompanyID)
			require.NotEmpty(t, row.ID)
		}
		stored := env.opportunity.recs["opp-1"]
		require.Equal(t, "S2", *stored.CurrentStageID)
		require.False(t, stored.StageOutdated)

		select {
		case stageID := <-env.notifier.sent:
			require.Equal(t, "S2", stageID)
		case <-time.After(time.Second):
			t.Fatal("уведомление не отправлено")
		}
	})

	t.Run(`idempotence check`, func(t *testing.T) {
		opp := opportunity("opp-2", "company")
		opp.CustomerID = strPtr("customer")
		env := newTestEnv(opp)
		env.stageConfig.list = []dbmodels.StageConfig{
			stage("S1", "company", 20, models.LogicalAnd, customerSet),
		}
		first, err := env.handler.Recompute(context.Background(), "tenant", "opp-2")
		require.Nil(t, err)
		second, err := env.handler.Recompute(context.Background(), "tenant", "opp-2")
		require.Nil(t, err)
		require.Equal(t, first, second)
		require.Len(t, env.opportunityStage.rows["opp-2"], 1)
	})

	t.Run(`zero stages check`, func(t *testing.T) {
		opp := opportunity("opp-3", "company")
		opp.CurrentStageID = strPtr("old")
		opp.WinRate = 50
		env := newTestEnv(opp)
		env.opportunityStage.rows["opp-3"] = []dbmodels.OpportunityStage{{StageID: "old"}}

		view, err := env.handler.Recompute(context.Background(), "tenant", "opp-3")
		require.Nil(t, err)
		require.Equal(t, float64(0), view.WinRate)
		require.Equal(t, "", view.CurrentStageID)
		require.Empty(t, view.Stages)
		require.Empty(t, env.opportunityStage.rows["opp-3"])
		require.Nil(t, env.opportunity.recs["opp-3"].CurrentStageID)
		require.Equal(t, float64(0), env.opportunity.recs["opp-3"].WinRate)
	})

	t.Run(`company mismatch check`, func(t *testing.T) {
		opp := opportunity("opp-4", "company")
		opp.CustomerID = strPtr("customer")
		env := newTestEnv(opp)
		env.stageConfig.list = []dbmodels.StageConfig{
			stage("S1", "other-company", 20, models.LogicalAnd, customerSet),
		}
		_, err := env.handler.Recompute(context.Background(), "tenant", "opp-4")
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrStageCompanyMismatch))
		require.Empty(t, env.opportunityStage.rows["opp-4"])
		require.Equal(t, 0, env.opportunityStage.deletes)
		require.Empty(t, env.opportunity.updates)
	})

	t.Run(`not found check`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.Recompute(context.Background(), "tenant", "missing")
		require.True(t, errors.Is(err, ErrOpportunityNotFound))

		env = newTestEnv(opportunity("opp-5", "company"))
		_, err = env.handler.Recompute(context.Background(), "other-tenant", "opp-5")
		require.True(t, errors.Is(err, ErrOpportunityNotFound))
	})

	t.Run(`busy check`, func(t *testing.T) {
		env := newTestEnv(opportunity("opp-6", "company"))
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			lock.WithDelay(context.Background(), lockKey("opp-6"), time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		_, err := env.handler.Recompute(context.Background(), "tenant", "opp-6")
		close(release)
		require.True(t, errors.Is(err, ErrRecomputeBusy))
	})

	t.Run(`unchanged stage is not notified check`, func(t *testing.T) {
		opp := opportunity("opp-7", "company")
		opp.CustomerID = strPtr("customer")
		opp.CurrentStageID = strPtr("S2")
		env := newTestEnv(opp)
		s2 := stage("S2", "company", 0, models.LogicalAnd, customerSet)
		s2.IsClosedLost = true
		env.stageConfig.list = []dbmodels.StageConfig{s2}

		_, err := env.handler.Recompute(context.Background(), "tenant", "opp-7")
		require.Nil(t, err)
		select {
		case <-env.notifier.sent:
			t.Fatal("повторное уведомление")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestClosedOpportunity(t *testing.T) {
	customerSet := cond(models.CondCustomer, models.OperatorNotEqual, "0")

	newClosed := func() *testEnv {
		opp := opportunity("opp-closed", "company")
		opp.CustomerID = strPtr("customer")
		opp.IsClosed = true
		opp.WinRate = 60
		opp.CurrentStageID = strPtr("S0")
		opp.StageOutdated = true
		env := newTestEnv(opp)
		s0 := stage("S0", "company", 60, models.LogicalAnd)
		env.opportunityStage.rows["opp-closed"] = []dbmodels.OpportunityStage{
			{OpportunityID: "opp-closed", StageID: "S0", Stage: &s0, IsCurrent: true},
		}
		s1 := stage("S1", "company", 10, models.LogicalAnd, customerSet)
		s1.IsDealClosed = true
		env.stageConfig.list = []dbmodels.StageConfig{s1}
		return env
	}

	t.Run(`closed opportunity check`, func(t *testing.T) {
		env := newClosed()
		view, err := env.handler.Recompute(context.Background(), "tenant", "opp-closed")
		require.Nil(t, err)
		require.Equal(t, float64(60), view.WinRate)
		require.Equal(t, "S0", view.CurrentStageID)
		require.Len(t, view.Stages, 1)

		stored := env.opportunity.recs["opp-closed"]
		require.Equal(t, float64(60), stored.WinRate)
		require.Equal(t, "S0", *stored.CurrentStageID)
		require.False(t, stored.StageOutdated)
		require.Equal(t, 0, env.opportunityStage.deletes)
		require.Len(t, env.opportunity.updates, 1)
		require.Equal(t, map[string]interface{}{"stage_outdated": false}, env.opportunity.updates[0])

		select {
		case <-env.notifier.sent:
			t.Fatal("уведомление по закрытой сделке")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run(`closed opportunity in caller transaction check`, func(t *testing.T) {
		env := newClosed()
		env.opportunity.recs["opp-closed"].StageOutdated = false
		result, err := env.handler.RecomputeTx(nil, "tenant", "opp-closed")
		require.Nil(t, err)
		require.False(t, result.StageChanged())
		require.Equal(t, "S0", result.CurrentStageID())
		require.Empty(t, env.opportunity.updates)
	})
}

func TestRecomputeCancelled(t *testing.T) {
	t.Run(`cancelled context check`, func(t *testing.T) {
		env := newTestEnv(opportunity("opp-8", "company"))
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			lock.WithDelay(context.Background(), lockKey("opp-8"), time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := env.handler.Recompute(ctx, "tenant", "opp-8")
		close(release)
		require.True(t, errors.Is(err, context.Canceled))
		require.False(t, errors.Is(err, ErrRecomputeBusy))
		require.Equal(t, metrics.ResultCanceled, resultLabel(err))
	})
}

func TestRecomputeTx(t *testing.T) {
	t.Run(`result in caller transaction check`, func(t *testing.T) {
		opp := opportunity("opp-1", "company")
		opp.CustomerID = strPtr("customer")
		env := newTestEnv(opp)
		env.stageConfig.list = []dbmodels.StageConfig{
			stage("S1", "company", 25, models.LogicalAnd, cond(models.CondCustomer, models.OperatorNotEqual, "0")),
		}
		result, err := env.handler.RecomputeTx(nil, "tenant", "opp-1")
		require.Nil(t, err)
		require.True(t, result.StageChanged())
		require.Equal(t, "S1", result.CurrentStageID())
		require.Equal(t, float64(25), result.Opportunity.WinRate)

		list, err := env.handler.StageList("tenant", "opp-1")
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, float64(25), list[0].WinRate)
	})
}
