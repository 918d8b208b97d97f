package quotationhandler

import (
	"sales-pipeline-backend/db"
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	quotationstore "sales-pipeline-backend/lib/quotation/store"
	initchecker "sales-pipeline-backend/lib/utils/init-checker"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(tenantID string, data opportunityapimodels.QuotationData) (id string, err error)
	GetByID(tenantID, id string) (item opportunityapimodels.QuotationView, hMsg string, err error)
	Confirm(tenantID, id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:        quotationstore.NewInstance(db.DB),
		stageHandler: opportunitystagehandler.Instance,
	}
	initchecker.CheckInit(
		"stageHandler", instance.stageHandler,
	)
	Instance = instance
}

type impl struct {
	store        quotationstore.Provider
	stageHandler opportunitystagehandler.Provider
}

func (i impl) getLogger(tenantID, id string) *log.Entry {
	return log.
		WithField("tenant_id", tenantID).
		WithField("quotation_id", id)
}

func (i impl) Create(tenantID string, data opportunityapimodels.QuotationData) (id string, err error) {
	rec := dbmodels.Quotation{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			BaseTenantModel: dbmodels.BaseTenantModel{
				TenantID: tenantID,
			},
			CompanyID: data.CompanyID,
		},
		Code:        data.Code,
		Title:       data.Title,
		TotalAmount: data.TotalAmount,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания коммерческого предложения")
	}
	return id, nil
}

func (i impl) GetByID(tenantID, id string) (item opportunityapimodels.QuotationView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка получения коммерческого предложения")
	}
	if rec == nil {
		return item, "коммерческое предложение не найдено", nil
	}
	return opportunityapimodels.QuotationConvert(*rec), "", nil
}

// Confirm подтверждает предложение и пересчитывает этапы связанных сделок
func (i impl) Confirm(tenantID, id string) (hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения коммерческого предложения")
	}
	if rec == nil {
		return "коммерческое предложение не найдено", nil
	}
	if rec.IsConfirmed {
		return "", nil
	}
	var results []opportunitystagehandler.Result
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		err := quotationstore.NewInstance(tx).Update(tenantID, id, map[string]interface{}{"is_confirmed": true})
		if err != nil {
			return errors.Wrap(err, "ошибка подтверждения коммерческого предложения")
		}
		ids, err := opportunitystore.NewInstance(tx).ListIDsByQuotation(tenantID, id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения сделок по коммерческому предложению")
		}
		results, err = i.stageHandler.RecomputeManyTx(tx, tenantID, ids)
		return err
	})
	if err != nil {
		return "", err
	}
	for _, result := range results {
		i.stageHandler.Notify(result)
	}
	i.getLogger(tenantID, id).Infof("коммерческое предложение подтверждено, пересчитано сделок: %v", len(results))
	return "", nil
}
