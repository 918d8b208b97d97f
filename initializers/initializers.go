package initializers

import (
	"context"
	"sales-pipeline-backend/config"
	"sales-pipeline-backend/fiberlog"
	conditionpropertyprovider "sales-pipeline-backend/lib/dicts/condition-property"
	xlsexport "sales-pipeline-backend/lib/export/xls"
	opportunityhandler "sales-pipeline-backend/lib/opportunity"
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	recomputeworker "sales-pipeline-backend/lib/opportunity-stage/recompute-worker"
	quotationhandler "sales-pipeline-backend/lib/quotation"
	"sales-pipeline-backend/lib/rbac"
	reporthandler "sales-pipeline-backend/lib/report"
	saleorderhandler "sales-pipeline-backend/lib/sale-order"
	stageconfighandler "sales-pipeline-backend/lib/stage-config"
	stagenotify "sales-pipeline-backend/lib/stage-notify"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	conditionpropertyprovider.NewHandler()
	initPreload()
	stagenotify.NewHandler()
	opportunitystagehandler.NewHandler(config.Conf.StageLockWait())
	stageconfighandler.NewHandler()
	opportunityhandler.NewHandler()
	quotationhandler.NewHandler()
	saleorderhandler.NewHandler()
	xlsexport.NewHandler()
	reporthandler.NewHandler()
	rbac.NewHandler()
	go initWorkers(ctx)
}

func initPreload() {
	if err := conditionpropertyprovider.Instance.Preload(); err != nil {
		log.WithError(err).Error("ошибка предзаполнения справочника условий этапов")
	}
}

func initWorkers(ctx context.Context) {
	// Задача пересчета этапов сделок после изменения настройки этапов
	recomputeworker.StartWorker(ctx, config.Conf.StageWorkerInterval(), config.Conf.Stage.WorkerBatchSize)
}
