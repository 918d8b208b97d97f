package opportunitystagehandler

import (
	"context"
	"sales-pipeline-backend/db"
	conditionpropertystore "sales-pipeline-backend/lib/dicts/condition-property/store"
	"sales-pipeline-backend/lib/metrics"
	opportunitystagestore "sales-pipeline-backend/lib/opportunity-stage/store"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	stageconfigstore "sales-pipeline-backend/lib/stage-config/store"
	stagenotify "sales-pipeline-backend/lib/stage-notify"
	initchecker "sales-pipeline-backend/lib/utils/init-checker"
	"sales-pipeline-backend/lib/utils/lock"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	dbmodels "sales-pipeline-backend/models/db"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOpportunityNotFound  = errors.New("сделка не найдена")
	ErrStageCompanyMismatch = errors.New("этап сделки принадлежит другой компании")
	ErrRecomputeBusy        = errors.New("этап сделки уже пересчитывается, повторите запрос позже")
)

type Provider interface {
	// Recompute пересчитывает этап сделки в отдельной транзакции
	Recompute(ctx context.Context, tenantID, opportunityID string) (result opportunityapimodels.StageResolutionView, err error)
	// RecomputeTx пересчитывает этап в транзакции вызывающего, уведомление отправляет Notify после коммита
	RecomputeTx(tx *gorm.DB, tenantID, opportunityID string) (result Result, err error)
	// RecomputeManyTx пересчитывает сделки, связанные с измененным документом
	RecomputeManyTx(tx *gorm.DB, tenantID string, opportunityIDs []string) (results []Result, err error)
	Notify(result Result)
	StageList(tenantID, opportunityID string) (list []opportunityapimodels.OpportunityStageView, err error)
}

var Instance Provider

func NewHandler(lockWait time.Duration) {
	initchecker.CheckInit(
		"notifier", stagenotify.Instance,
	)
	Instance = impl{
		db:       db.DB,
		storesFn: newStores,
		runTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		lockWait: lockWait,
		notifier: stagenotify.Instance,
	}
}

type stores struct {
	opportunity       opportunitystore.Provider
	stageConfig       stageconfigstore.Provider
	opportunityStage  opportunitystagestore.Provider
	conditionProperty conditionpropertystore.Provider
}

func newStores(tx *gorm.DB) stores {
	return stores{
		opportunity:       opportunitystore.NewInstance(tx),
		stageConfig:       stageconfigstore.NewInstance(tx),
		opportunityStage:  opportunitystagestore.NewInstance(tx),
		conditionProperty: conditionpropertystore.NewInstance(tx),
	}
}

type impl struct {
	db       *gorm.DB
	storesFn func(tx *gorm.DB) stores
	runTx    func(fn func(tx *gorm.DB) error) error
	lockWait time.Duration
	notifier stagenotify.Provider
}

// Result - итог пересчета внутри транзакции
type Result struct {
	Opportunity     dbmodels.Opportunity
	Resolution      Resolution
	Rows            []dbmodels.OpportunityStage
	PreviousStageID string
}

func (r Result) CurrentStageID() string {
	if current := r.Resolution.Current(); current != nil {
		return current.ID
	}
	return ""
}

func (r Result) StageChanged() bool {
	return r.CurrentStageID() != r.PreviousStageID
}

func (r Result) View() opportunityapimodels.StageResolutionView {
	stages := make([]opportunityapimodels.OpportunityStageView, 0, len(r.Rows))
	for _, row := range r.Rows {
		stages = append(stages, opportunityapimodels.OpportunityStageConvert(row))
	}
	return opportunityapimodels.StageResolutionView{
		OpportunityID:  r.Opportunity.ID,
		WinRate:        r.Resolution.WinRate,
		CurrentStageID: r.CurrentStageID(),
		Stages:         stages,
	}
}

func (i impl) getLogger(tenantID, opportunityID string) *log.Entry {
	return log.
		WithField("tenant_id", tenantID).
		WithField("opportunity_id", opportunityID)
}

func lockKey(opportunityID string) string {
	return lock.Key("opportunity_stage", opportunityID)
}

func (i impl) Recompute(ctx context.Context, tenantID, opportunityID string) (opportunityapimodels.StageResolutionView, error) {
	logger := i.getLogger(tenantID, opportunityID)
	started := time.Now()
	var result Result
	locked, err := lock.WithDelay(ctx, lockKey(opportunityID), i.lockWait, func() error {
		return i.runTx(func(tx *gorm.DB) error {
			var err error
			result, err = i.recompute(i.storesFn(tx), tenantID, opportunityID)
			return err
		})
	})
	if !locked && err == nil {
		err = ErrRecomputeBusy
		if ctx.Err() != nil {
			err = ctx.Err()
		}
	}
	metrics.ObserveStageResolution(started, resultLabel(err))
	if err != nil {
		logger.WithError(err).Warn("этап сделки не пересчитан")
		return opportunityapimodels.StageResolutionView{}, err
	}
	i.Notify(result)
	logger.
		WithField("win_rate", result.Resolution.WinRate).
		WithField("stage_id", result.CurrentStageID()).
		Info("этап сделки пересчитан")
	return result.View(), nil
}

func (i impl) RecomputeTx(tx *gorm.DB, tenantID, opportunityID string) (Result, error) {
	started := time.Now()
	result, err := i.recompute(i.storesFn(tx), tenantID, opportunityID)
	metrics.ObserveStageResolution(started, resultLabel(err))
	return result, err
}

func (i impl) RecomputeManyTx(tx *gorm.DB, tenantID string, opportunityIDs []string) ([]Result, error) {
	results := make([]Result, 0, len(opportunityIDs))
	for _, id := range opportunityIDs {
		result, err := i.RecomputeTx(tx, tenantID, id)
		if err != nil {
			return nil, errors.Wrapf(err, "opportunity_id: %v", id)
		}
		results = append(results, result)
	}
	return results, nil
}

func (i impl) Notify(result Result) {
	if !result.StageChanged() {
		return
	}
	current := result.Resolution.Current()
	if current == nil {
		return
	}
	kind := stagenotify.KindOf(*current)
	if kind == "" {
		return
	}
	metrics.StageTransition(kind)
	if i.notifier == nil {
		return
	}
	opp := result.Opportunity
	stage := *current
	go func() {
		err := i.notifier.StageReached(opp, stage)
		if err != nil {
			i.getLogger(opp.TenantID, opp.ID).WithError(err).Warn("уведомление об этапе сделки не отправлено")
		}
	}()
}

func (i impl) StageList(tenantID, opportunityID string) ([]opportunityapimodels.OpportunityStageView, error) {
	list, err := i.storesFn(i.db).opportunityStage.List(tenantID, opportunityID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения этапов сделки")
	}
	result := make([]opportunityapimodels.OpportunityStageView, 0, len(list))
	for _, rec := range list {
		result = append(result, opportunityapimodels.OpportunityStageConvert(rec))
	}
	return result, nil
}

func (i impl) recompute(s stores, tenantID, opportunityID string) (Result, error) {
	opp, err := s.opportunity.GetForUpdate(tenantID, opportunityID)
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка получения сделки")
	}
	if opp == nil {
		return Result{}, ErrOpportunityNotFound
	}
	if opp.IsClosed {
		return i.closedResult(s, *opp)
	}
	properties, err := s.conditionProperty.List()
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка получения справочника условий")
	}
	catalog, err := s.stageConfig.ListForShare(tenantID, opp.CompanyID)
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка получения этапов компании")
	}
	resolution := Resolve(catalog, EvaluateAll(properties, *opp))

	// до любых изменений, чтобы при ошибке цепочка этапов осталась прежней
	for _, stage := range resolution.Reached {
		if stage.CompanyID != opp.CompanyID || stage.TenantID != opp.TenantID {
			return Result{}, errors.Wrapf(ErrStageCompanyMismatch, "stage_id: %v, opportunity_id: %v", stage.ID, opp.ID)
		}
	}

	result := Result{
		Opportunity: *opp,
		Resolution:  resolution,
		Rows:        buildRows(*opp, resolution),
	}
	if opp.CurrentStageID != nil {
		result.PreviousStageID = *opp.CurrentStageID
	}

	err = s.opportunityStage.DeleteByOpportunity(tenantID, opp.ID)
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка удаления этапов сделки")
	}
	if len(result.Rows) != 0 {
		err = s.opportunityStage.CreateList(result.Rows)
		if err != nil {
			return Result{}, errors.Wrap(err, "ошибка сохранения этапов сделки")
		}
	}
	var currentStageID *string
	if id := result.CurrentStageID(); id != "" {
		currentStageID = &id
	}
	updMap := map[string]interface{}{
		"win_rate":         resolution.WinRate,
		"current_stage_id": currentStageID,
		"stage_outdated":   false,
		"stage_retry_at":   nil,
	}
	err = s.opportunity.Update(tenantID, opp.ID, updMap)
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка обновления вероятности выигрыша сделки")
	}
	result.Opportunity.WinRate = resolution.WinRate
	result.Opportunity.CurrentStageID = currentStageID
	result.Opportunity.StageOutdated = false
	return result, nil
}

// closedResult возвращает сохраненную цепочку закрытой сделки без пересчета
func (i impl) closedResult(s stores, opp dbmodels.Opportunity) (Result, error) {
	if opp.StageOutdated {
		err := s.opportunity.Update(opp.TenantID, opp.ID, map[string]interface{}{"stage_outdated": false})
		if err != nil {
			return Result{}, errors.Wrap(err, "ошибка сброса признака пересчета сделки")
		}
		opp.StageOutdated = false
	}
	rows, err := s.opportunityStage.List(opp.TenantID, opp.ID)
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка получения этапов сделки")
	}
	resolution := Resolution{Index: -1, Reached: []dbmodels.StageConfig{}, WinRate: opp.WinRate}
	for _, row := range rows {
		if row.Stage != nil {
			resolution.Reached = append(resolution.Reached, *row.Stage)
		}
	}
	resolution.Index = len(resolution.Reached) - 1
	result := Result{
		Opportunity: opp,
		Resolution:  resolution,
		Rows:        rows,
	}
	result.PreviousStageID = result.CurrentStageID()
	return result, nil
}

func buildRows(opp dbmodels.Opportunity, resolution Resolution) []dbmodels.OpportunityStage {
	rows := make([]dbmodels.OpportunityStage, 0, len(resolution.Reached))
	for k := range resolution.Reached {
		stage := resolution.Reached[k]
		rows = append(rows, dbmodels.OpportunityStage{
			BaseCompanyModel: dbmodels.BaseCompanyModel{
				BaseTenantModel: dbmodels.BaseTenantModel{
					BaseModel: dbmodels.BaseModel{ID: uuid.NewString()},
					TenantID:  opp.TenantID,
				},
				CompanyID: opp.CompanyID,
			},
			OpportunityID: opp.ID,
			StageID:       stage.ID,
			Stage:         &stage,
			StageOrder:    k,
			IsCurrent:     k == resolution.Index,
		})
	}
	return rows
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOk
	case errors.Is(err, ErrRecomputeBusy):
		return metrics.ResultBusy
	case errors.Is(err, ErrStageCompanyMismatch):
		return metrics.ResultMismatch
	case errors.Is(err, ErrOpportunityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	}
	return metrics.ResultError
}
