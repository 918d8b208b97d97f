package reporthandler

import (
	"context"
	"fmt"
	"sales-pipeline-backend/config"
	"sales-pipeline-backend/db"
	pdfexport "sales-pipeline-backend/lib/export/pdf"
	xlsexport "sales-pipeline-backend/lib/export/xls"
	filestorage "sales-pipeline-backend/lib/file-storage"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	initchecker "sales-pipeline-backend/lib/utils/init-checker"
	reportapimodels "sales-pipeline-backend/models/api/report"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	ContentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePdf  = "application/pdf"

	reportTitle = "Воронка продаж"
)

type Provider interface {
	Pipeline(tenantID string, filter reportapimodels.PipelineFilter) (reportapimodels.PipelineSummary, error)
	Export(tenantID string, filter reportapimodels.PipelineFilter, format reportapimodels.ExportFormat) (body []byte, contentType, fileName string, err error)
	Archive(ctx context.Context, tenantID string, filter reportapimodels.PipelineFilter, format reportapimodels.ExportFormat) (view reportapimodels.ArchiveView, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:      opportunitystore.NewInstance(db.DB),
		xlsHandler: xlsexport.Instance,
		fileStore:  filestorage.Instance,
		fontDir:    config.Conf.App.FontDir,
		presignTTL: config.Conf.PresignTTL(),
		now:        time.Now,
	}
	initchecker.CheckInit(
		"xlsHandler", instance.xlsHandler,
	)
	Instance = instance
}

type impl struct {
	store      opportunitystore.Provider
	xlsHandler xlsexport.Provider
	// может отсутствовать, если хранилище не настроено
	fileStore  filestorage.Provider
	fontDir    string
	presignTTL time.Duration
	now        func() time.Time
}

func (i impl) getLogger(tenantID string, filter reportapimodels.PipelineFilter) *log.Entry {
	return log.
		WithField("tenant_id", tenantID).
		WithField("company_id", filter.CompanyID)
}

func (i impl) Pipeline(tenantID string, filter reportapimodels.PipelineFilter) (reportapimodels.PipelineSummary, error) {
	list, err := i.store.PipelineTotals(tenantID, filter)
	if err != nil {
		return reportapimodels.PipelineSummary{}, errors.Wrap(err, "ошибка получения сводки по воронке")
	}
	return reportapimodels.PipelineSummaryConvert(list), nil
}

func (i impl) Export(tenantID string, filter reportapimodels.PipelineFilter, format reportapimodels.ExportFormat) (body []byte, contentType, fileName string, err error) {
	summary, err := i.Pipeline(tenantID, filter)
	if err != nil {
		return nil, "", "", err
	}
	now := i.now()
	baseName := fmt.Sprintf("pipeline_%v", now.Format("20060102_150405"))
	switch format {
	case reportapimodels.ExportPdf:
		body, err = pdfexport.GeneratePipeline(i.fontDir, reportTitle, summary, now)
		if err != nil {
			return nil, "", "", errors.Wrap(err, "ошибка формирования pdf")
		}
		return body, ContentTypePdf, baseName + ".pdf", nil
	default:
		buf, err := i.xlsHandler.ExportPipeline(summary)
		if err != nil {
			return nil, "", "", errors.Wrap(err, "ошибка формирования xlsx")
		}
		return buf.Bytes(), ContentTypeXlsx, baseName + ".xlsx", nil
	}
}

func (i impl) Archive(ctx context.Context, tenantID string, filter reportapimodels.PipelineFilter, format reportapimodels.ExportFormat) (view reportapimodels.ArchiveView, hMsg string, err error) {
	if i.fileStore == nil {
		return view, "хранилище файлов не настроено", nil
	}
	logger := i.getLogger(tenantID, filter)
	body, contentType, fileName, err := i.Export(tenantID, filter, format)
	if err != nil {
		return view, "", err
	}
	objectName, err := i.fileStore.Upload(ctx, tenantID, fileName, contentType, body)
	if err != nil {
		return view, "", err
	}
	link, err := i.fileStore.PresignedURL(ctx, objectName, fileName, i.presignTTL)
	if err != nil {
		return view, "", err
	}
	logger.
		WithField("object_name", objectName).
		Info("отчет по воронке сохранен в хранилище")
	return reportapimodels.ArchiveView{
		FileName: fileName,
		Url:      link,
	}, "", nil
}
