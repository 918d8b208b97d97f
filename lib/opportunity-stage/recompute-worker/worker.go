package recomputeworker

import (
	"context"
	"sales-pipeline-backend/db"
	"sales-pipeline-backend/lib/metrics"
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	baseworker "sales-pipeline-backend/lib/utils/base-worker"
	"sales-pipeline-backend/lib/utils/helpers"
	"time"

	"github.com/pkg/errors"
)

// Задача пересчета этапов сделок после изменения настроек этапов компании
func StartWorker(ctx context.Context, interval time.Duration, batchSize int) {
	i := &impl{
		BaseImpl:         *baseworker.NewInstance("StageRecomputeWorker", 20*time.Second, interval),
		opportunityStore: opportunitystore.NewInstance(db.DB),
		stageHandler:     opportunitystagehandler.Instance,
		batchSize:        batchSize,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	opportunityStore opportunitystore.Provider
	stageHandler     opportunitystagehandler.Provider
	batchSize        int
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.opportunityStore.ListStageOutdated(i.batchSize)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка сделок для пересчета этапа")
		return
	}
	processed := 0
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		_, err = i.stageHandler.Recompute(ctx, rec.TenantID, rec.ID)
		if err != nil {
			if errors.Is(err, opportunitystagehandler.ErrRecomputeBusy) {
				// сделку пересчитывает запрос пользователя
				continue
			}
			if helpers.IsContextDone(ctx) {
				break
			}
			logger.
				WithError(err).
				WithField("tenant_id", rec.TenantID).
				WithField("opportunity_id", rec.ID).
				Error("ошибка пересчета этапа сделки")
			err = i.opportunityStore.MarkStageRetry(rec.TenantID, rec.ID)
			if err != nil {
				logger.WithError(err).WithField("opportunity_id", rec.ID).Error("ошибка переноса сделки в конец очереди пересчета")
			}
			continue
		}
		processed++
	}
	metrics.OutdatedProcessed(processed)
	if processed != 0 {
		logger.Infof("пересчитано сделок: %v", processed)
	}
}
