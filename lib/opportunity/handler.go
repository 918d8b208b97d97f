package opportunityhandler

import (
	"fmt"
	"sales-pipeline-backend/db"
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	quotationstore "sales-pipeline-backend/lib/quotation/store"
	saleorderstore "sales-pipeline-backend/lib/sale-order/store"
	"sales-pipeline-backend/lib/utils/helpers"
	initchecker "sales-pipeline-backend/lib/utils/init-checker"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	dbmodels "sales-pipeline-backend/models/db"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(tenantID, userID string, data opportunityapimodels.OpportunityData) (id, hMsg string, err error)
	Update(tenantID, id string, data opportunityapimodels.OpportunityData) (hMsg string, err error)
	GetByID(tenantID, id string) (item opportunityapimodels.OpportunityView, err error)
	List(tenantID string, filter opportunityapimodels.OpportunityFilter) (list []opportunityapimodels.OpportunityView, rowCount int64, err error)
	Close(tenantID, id string) (hMsg string, err error)
	SetProductLines(tenantID, id string, data opportunityapimodels.ProductLines) (hMsg string, err error)
	SetCompetitors(tenantID, id string, data opportunityapimodels.Competitors) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:          opportunitystore.NewInstance(db.DB),
		quotationStore: quotationstore.NewInstance(db.DB),
		saleOrderStore: saleorderstore.NewInstance(db.DB),
		stageHandler:   opportunitystagehandler.Instance,
	}
	initchecker.CheckInit(
		"stageHandler", instance.stageHandler,
	)
	Instance = instance
}

type impl struct {
	store          opportunitystore.Provider
	quotationStore quotationstore.Provider
	saleOrderStore saleorderstore.Provider
	stageHandler   opportunitystagehandler.Provider
}

func (i impl) getLogger(tenantID, id, userID string) *log.Entry {
	logger := log.WithField("tenant_id", tenantID)
	if id != "" {
		logger = logger.WithField("opportunity_id", id)
	}
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func (i impl) Create(tenantID, userID string, data opportunityapimodels.OpportunityData) (id, hMsg string, err error) {
	logger := i.getLogger(tenantID, "", userID)
	hMsg, err = i.checkDependency(tenantID, data)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	rec := dbmodels.Opportunity{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			BaseTenantModel: dbmodels.BaseTenantModel{
				TenantID: tenantID,
			},
			CompanyID: data.CompanyID,
		},
		Code:               data.Code,
		Title:              data.Title,
		CustomerID:         helpers.NilIfEmpty(data.CustomerID),
		ProductCategoryIDs: pq.StringArray(data.ProductCategoryIDs),
		BudgetValue:        data.BudgetValue,
		OpenDate:           data.OpenDate,
		CloseDate:          data.CloseDate,
		DecisionMakerID:    helpers.NilIfEmpty(data.DecisionMakerID),
		LostByOtherReason:  data.LostByOtherReason,
		IsDealClose:        data.IsDealClose,
		QuotationID:        helpers.NilIfEmpty(data.QuotationID),
		SaleOrderID:        helpers.NilIfEmpty(data.SaleOrderID),
		SalePersonID:       data.SalePersonID,
		SalePersonEmail:    data.SalePersonEmail,
	}
	if rec.Code == "" {
		rec.Code = newCode()
	}
	if rec.SalePersonID == "" {
		rec.SalePersonID = userID
	}
	var result opportunitystagehandler.Result
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		id, err = opportunitystore.NewInstance(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания сделки")
		}
		result, err = i.stageHandler.RecomputeTx(tx, tenantID, id)
		return err
	})
	if err != nil {
		return "", "", err
	}
	i.stageHandler.Notify(result)
	logger.
		WithField("opportunity_id", id).
		WithField("win_rate", result.Resolution.WinRate).
		Info("сделка создана")
	return id, "", nil
}

func (i impl) Update(tenantID, id string, data opportunityapimodels.OpportunityData) (hMsg string, err error) {
	rec, hMsg, err := i.getEditable(tenantID, id)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	if rec.CompanyID != data.CompanyID {
		return "нельзя перенести сделку в другую компанию", nil
	}
	hMsg, err = i.checkDependency(tenantID, data)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	updMap := map[string]interface{}{
		"title":                data.Title,
		"customer_id":          helpers.NilIfEmpty(data.CustomerID),
		"product_category_ids": pq.StringArray(data.ProductCategoryIDs),
		"budget_value":         data.BudgetValue,
		"open_date":            data.OpenDate,
		"close_date":           data.CloseDate,
		"decision_maker_id":    helpers.NilIfEmpty(data.DecisionMakerID),
		"lost_by_other_reason": data.LostByOtherReason,
		"is_deal_close":        data.IsDealClose,
		"quotation_id":         helpers.NilIfEmpty(data.QuotationID),
		"sale_order_id":        helpers.NilIfEmpty(data.SaleOrderID),
		"sale_person_id":       data.SalePersonID,
		"sale_person_email":    data.SalePersonEmail,
	}
	if data.Code != "" {
		updMap["code"] = data.Code
	}
	return "", i.saveWithRecompute(tenantID, id, func(store opportunitystore.Provider) error {
		err := store.Update(tenantID, id, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения сделки")
		}
		return nil
	})
}

func (i impl) GetByID(tenantID, id string) (opportunityapimodels.OpportunityView, error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return opportunityapimodels.OpportunityView{}, errors.Wrap(err, "ошибка получения сделки")
	}
	if rec == nil {
		return opportunityapimodels.OpportunityView{}, opportunitystagehandler.ErrOpportunityNotFound
	}
	return opportunityapimodels.OpportunityConvert(*rec), nil
}

func (i impl) List(tenantID string, filter opportunityapimodels.OpportunityFilter) (list []opportunityapimodels.OpportunityView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка сделок")
	}
	list = make([]opportunityapimodels.OpportunityView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, opportunityapimodels.OpportunityConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Close(tenantID, id string) (hMsg string, err error) {
	_, hMsg, err = i.getEditable(tenantID, id)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	err = i.store.Update(tenantID, id, map[string]interface{}{
		"is_closed":      true,
		"stage_outdated": false,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка закрытия сделки")
	}
	i.getLogger(tenantID, id, "").Info("сделка закрыта")
	return "", nil
}

func (i impl) SetProductLines(tenantID, id string, data opportunityapimodels.ProductLines) (hMsg string, err error) {
	_, hMsg, err = i.getEditable(tenantID, id)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	lines := make([]dbmodels.OpportunityProductLine, 0, len(data.ProductLines))
	for _, item := range data.ProductLines {
		lines = append(lines, dbmodels.OpportunityProductLine{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return "", i.saveWithRecompute(tenantID, id, func(store opportunitystore.Provider) error {
		return store.ReplaceProductLines(tenantID, id, lines)
	})
}

func (i impl) SetCompetitors(tenantID, id string, data opportunityapimodels.Competitors) (hMsg string, err error) {
	_, hMsg, err = i.getEditable(tenantID, id)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	competitors := make([]dbmodels.OpportunityCompetitor, 0, len(data.Competitors))
	for _, item := range data.Competitors {
		competitors = append(competitors, dbmodels.OpportunityCompetitor{
			Name:     item.Name,
			Strength: item.Strength,
			Weakness: item.Weakness,
			IsWin:    item.IsWin,
		})
	}
	return "", i.saveWithRecompute(tenantID, id, func(store opportunitystore.Provider) error {
		return store.ReplaceCompetitors(tenantID, id, competitors)
	})
}

// saveWithRecompute: изменение сделки и пересчет этапа в одной транзакции
func (i impl) saveWithRecompute(tenantID, id string, save func(store opportunitystore.Provider) error) error {
	var result opportunitystagehandler.Result
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := save(opportunitystore.NewInstance(tx))
		if err != nil {
			return err
		}
		result, err = i.stageHandler.RecomputeTx(tx, tenantID, id)
		return err
	})
	if err != nil {
		return err
	}
	i.stageHandler.Notify(result)
	return nil
}

func (i impl) getEditable(tenantID, id string) (rec *dbmodels.Opportunity, hMsg string, err error) {
	rec, err = i.store.GetByID(tenantID, id)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения сделки")
	}
	if rec == nil {
		return nil, "сделка не найдена", nil
	}
	if rec.IsClosed {
		return nil, "сделка закрыта, изменение невозможно", nil
	}
	return rec, "", nil
}

func (i impl) checkDependency(tenantID string, data opportunityapimodels.OpportunityData) (hMsg string, err error) {
	if data.QuotationID != "" {
		rec, err := i.quotationStore.GetByID(tenantID, data.QuotationID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка получения коммерческого предложения")
		}
		if rec == nil || rec.CompanyID != data.CompanyID {
			return "коммерческое предложение не найдено", nil
		}
	}
	if data.SaleOrderID != "" {
		rec, err := i.saleOrderStore.GetByID(tenantID, data.SaleOrderID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка получения заказа")
		}
		if rec == nil || rec.CompanyID != data.CompanyID {
			return "заказ не найден", nil
		}
	}
	return "", nil
}

func newCode() string {
	return fmt.Sprintf("OPP-%v", strings.ToUpper(uuid.NewString()[:8]))
}
