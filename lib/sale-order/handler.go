package saleorderhandler

import (
	"sales-pipeline-backend/db"
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	saleorderstore "sales-pipeline-backend/lib/sale-order/store"
	initchecker "sales-pipeline-backend/lib/utils/init-checker"
	"sales-pipeline-backend/models"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(tenantID string, data opportunityapimodels.SaleOrderData) (id string, err error)
	GetByID(tenantID, id string) (item opportunityapimodels.SaleOrderView, hMsg string, err error)
	SetStatus(tenantID, id string, status models.SaleOrderStatus) (hMsg string, err error)
	SetDeliveryStatus(tenantID, id string, status models.DeliveryStatus) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:        saleorderstore.NewInstance(db.DB),
		stageHandler: opportunitystagehandler.Instance,
	}
	initchecker.CheckInit(
		"stageHandler", instance.stageHandler,
	)
	Instance = instance
}

type impl struct {
	store        saleorderstore.Provider
	stageHandler opportunitystagehandler.Provider
}

func (i impl) getLogger(tenantID, id string) *log.Entry {
	return log.
		WithField("tenant_id", tenantID).
		WithField("sale_order_id", id)
}

func (i impl) Create(tenantID string, data opportunityapimodels.SaleOrderData) (id string, err error) {
	rec := dbmodels.SaleOrder{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			BaseTenantModel: dbmodels.BaseTenantModel{
				TenantID: tenantID,
			},
			CompanyID: data.CompanyID,
		},
		Code:           data.Code,
		Title:          data.Title,
		TotalAmount:    data.TotalAmount,
		SystemStatus:   models.SaleOrderDraft,
		DeliveryStatus: models.DeliveryNone,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания заказа")
	}
	return id, nil
}

func (i impl) GetByID(tenantID, id string) (item opportunityapimodels.SaleOrderView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка получения заказа")
	}
	if rec == nil {
		return item, "заказ не найден", nil
	}
	return opportunityapimodels.SaleOrderConvert(*rec), "", nil
}

func (i impl) SetStatus(tenantID, id string, status models.SaleOrderStatus) (hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения заказа")
	}
	if rec == nil {
		return "заказ не найден", nil
	}
	if hMsg = CheckStatusChange(*rec, status); hMsg != "" {
		return hMsg, nil
	}
	if rec.SystemStatus == status {
		return "", nil
	}
	return "", i.updateWithRecompute(tenantID, id, map[string]interface{}{"system_status": status})
}

func (i impl) SetDeliveryStatus(tenantID, id string, status models.DeliveryStatus) (hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения заказа")
	}
	if rec == nil {
		return "заказ не найден", nil
	}
	if hMsg = CheckDeliveryChange(*rec, status); hMsg != "" {
		return hMsg, nil
	}
	if rec.DeliveryStatus == status {
		return "", nil
	}
	return "", i.updateWithRecompute(tenantID, id, map[string]interface{}{"delivery_status": status})
}

func (i impl) updateWithRecompute(tenantID, id string, updMap map[string]interface{}) error {
	var results []opportunitystagehandler.Result
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := saleorderstore.NewInstance(tx).Update(tenantID, id, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения заказа")
		}
		ids, err := opportunitystore.NewInstance(tx).ListIDsBySaleOrder(tenantID, id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения сделок по заказу")
		}
		results, err = i.stageHandler.RecomputeManyTx(tx, tenantID, ids)
		return err
	})
	if err != nil {
		return err
	}
	for _, result := range results {
		i.stageHandler.Notify(result)
	}
	i.getLogger(tenantID, id).
		WithField("changes", updMap).
		Infof("заказ изменен, пересчитано сделок: %v", len(results))
	return nil
}

// CheckStatusChange: отмененный заказ не меняет статус
func CheckStatusChange(rec dbmodels.SaleOrder, status models.SaleOrderStatus) string {
	if rec.SystemStatus == models.SaleOrderCancelled && status != models.SaleOrderCancelled {
		return "заказ отменен, изменение статуса невозможно"
	}
	if status == models.SaleOrderCancelled && rec.DeliveryStatus.IsStarted() {
		return "нельзя отменить заказ, поставка уже начата"
	}
	return ""
}

// CheckDeliveryChange: поставка возможна только по утвержденному заказу
func CheckDeliveryChange(rec dbmodels.SaleOrder, status models.DeliveryStatus) string {
	if status.IsStarted() && !rec.SystemStatus.IsApproved() {
		return "поставка возможна только по утвержденному заказу"
	}
	return ""
}
