package stageconfighandler

import (
	"fmt"
	"sales-pipeline-backend/db"
	conditionpropertystore "sales-pipeline-backend/lib/dicts/condition-property/store"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	stageconfigstore "sales-pipeline-backend/lib/stage-config/store"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	List(tenantID string, filter opportunityapimodels.StageConfigFilter) (list []opportunityapimodels.StageConfigView, err error)
	Create(tenantID string, data opportunityapimodels.StageConfigData) (id, hMsg string, err error)
	Update(tenantID, id string, data opportunityapimodels.StageConfigData) (hMsg string, err error)
	Delete(tenantID, id string) (hMsg string, err error)
	InitDefault(tenantID, companyID string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         stageconfigstore.NewInstance(db.DB),
		propertyStore: conditionpropertystore.NewInstance(db.DB),
		storesFn:      newTxStores,
		runTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
	}
}

type txStores struct {
	stageConfig stageconfigstore.Provider
	opportunity opportunitystore.Provider
}

func newTxStores(tx *gorm.DB) txStores {
	return txStores{
		stageConfig: stageconfigstore.NewInstance(tx),
		opportunity: opportunitystore.NewInstance(tx),
	}
}

type impl struct {
	store         stageconfigstore.Provider
	propertyStore conditionpropertystore.Provider
	storesFn      func(tx *gorm.DB) txStores
	runTx         func(fn func(tx *gorm.DB) error) error
}

func (i impl) getLogger(tenantID, companyID string) *log.Entry {
	logger := log.WithField("tenant_id", tenantID)
	if companyID != "" {
		logger = logger.WithField("company_id", companyID)
	}
	return logger
}

func (i impl) List(tenantID string, filter opportunityapimodels.StageConfigFilter) ([]opportunityapimodels.StageConfigView, error) {
	list, err := i.store.List(tenantID, filter.CompanyID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка этапов")
	}
	result := make([]opportunityapimodels.StageConfigView, 0, len(list))
	for _, rec := range list {
		result = append(result, opportunityapimodels.StageConfigConvert(rec))
	}
	return result, nil
}

func (i impl) Create(tenantID string, data opportunityapimodels.StageConfigData) (id, hMsg string, err error) {
	rec, hMsg, err := i.prepare(tenantID, "", data)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	err = i.runTx(func(tx *gorm.DB) error {
		s := i.storesFn(tx)
		id, err = s.stageConfig.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания этапа")
		}
		return markOutdated(s.opportunity, tenantID, data.CompanyID)
	})
	if err != nil {
		return "", "", err
	}
	i.getLogger(tenantID, data.CompanyID).WithField("stage_id", id).Info("этап создан")
	return id, "", nil
}

func (i impl) Update(tenantID, id string, data opportunityapimodels.StageConfigData) (hMsg string, err error) {
	current, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения этапа")
	}
	if current == nil {
		return "этап не найден", nil
	}
	if current.CompanyID != data.CompanyID {
		return "этап принадлежит другой компании", nil
	}
	rec, hMsg, err := i.prepare(tenantID, id, data)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	return "", i.runTx(func(tx *gorm.DB) error {
		s := i.storesFn(tx)
		err := s.stageConfig.Update(tenantID, id, rec)
		if err != nil {
			return errors.Wrap(err, "ошибка изменения этапа")
		}
		return markOutdated(s.opportunity, tenantID, current.CompanyID)
	})
}

// Delete блокирует этап до проверки использования, пересчет читает этапы под разделяемой блокировкой
func (i impl) Delete(tenantID, id string) (hMsg string, err error) {
	err = i.runTx(func(tx *gorm.DB) error {
		s := i.storesFn(tx)
		rec, err := s.stageConfig.GetForUpdate(tenantID, id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения этапа")
		}
		if rec == nil {
			return nil
		}
		used, err := s.stageConfig.IsUsed(tenantID, id)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки использования этапа")
		}
		if used {
			hMsg = "этап используется в сделках, удаление невозможно"
			return nil
		}
		err = s.stageConfig.Delete(tenantID, id)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления этапа")
		}
		return markOutdated(s.opportunity, tenantID, rec.CompanyID)
	})
	if err != nil {
		return "", err
	}
	return hMsg, nil
}

func (i impl) InitDefault(tenantID, companyID string) (hMsg string, err error) {
	logger := i.getLogger(tenantID, companyID)
	list, err := i.store.List(tenantID, companyID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения списка этапов")
	}
	if len(list) != 0 {
		return "этапы компании уже настроены", nil
	}
	properties, err := i.propertyStore.List()
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения справочника условий")
	}
	stages, err := DefaultStages(properties)
	if err != nil {
		return "", err
	}
	err = i.runTx(func(tx *gorm.DB) error {
		s := i.storesFn(tx)
		for _, rec := range stages {
			rec.TenantID = tenantID
			rec.CompanyID = companyID
			_, err := s.stageConfig.Create(rec)
			if err != nil {
				return errors.Wrapf(err, "ошибка создания этапа %v", rec.Indicator)
			}
		}
		return markOutdated(s.opportunity, tenantID, companyID)
	})
	if err != nil {
		return "", err
	}
	logger.Infof("созданы этапы по умолчанию: %v", len(stages))
	return "", nil
}

// prepare проверяет условия по справочнику и уникальность признаков этапа внутри компании
func (i impl) prepare(tenantID, id string, data opportunityapimodels.StageConfigData) (rec dbmodels.StageConfig, hMsg string, err error) {
	properties, err := i.propertyStore.List()
	if err != nil {
		return rec, "", errors.Wrap(err, "ошибка получения справочника условий")
	}
	conditions, hMsg := BuildConditions(properties, data.Conditions)
	if hMsg != "" {
		return rec, hMsg, nil
	}
	list, err := i.store.List(tenantID, data.CompanyID)
	if err != nil {
		return rec, "", errors.Wrap(err, "ошибка получения списка этапов")
	}
	hMsg = CheckExclusive(list, id, data)
	if hMsg != "" {
		return rec, hMsg, nil
	}
	rec = dbmodels.StageConfig{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			BaseTenantModel: dbmodels.BaseTenantModel{
				TenantID: tenantID,
			},
			CompanyID: data.CompanyID,
		},
		Indicator:       data.Indicator,
		Description:     data.Description,
		WinRate:         data.WinRate,
		LogicalOperator: data.LogicalOperator,
		Conditions:      conditions,
		IsClosedLost:    data.IsClosedLost,
		IsDelivery:      data.IsDelivery,
		IsDealClosed:    data.IsDealClosed,
	}
	return rec, "", nil
}

// BuildConditions сверяет условия со справочником, значение для сравнения всегда из справочника
func BuildConditions(properties []dbmodels.ConditionProperty, data []opportunityapimodels.StageConditionData) ([]dbmodels.StageCondition, string) {
	propertyMap := make(map[string]dbmodels.ConditionProperty, len(properties))
	for _, property := range properties {
		propertyMap[property.ID] = property
	}
	result := make([]dbmodels.StageCondition, 0, len(data))
	for _, item := range data {
		property, ok := propertyMap[item.ConditionPropertyID]
		if !ok {
			return nil, fmt.Sprintf("условие %v не найдено в справочнике", item.ConditionPropertyID)
		}
		if item.CompareData != "" && item.CompareData != property.CompareData {
			return nil, fmt.Sprintf("для условия %v допустимо значение %v", property.Title, property.CompareData)
		}
		condition := dbmodels.StageCondition{
			ConditionProperty: dbmodels.StageConditionProperty{
				ID:    property.ID,
				Title: property.Title,
			},
			ComparisonOperator: item.ComparisonOperator,
			CompareData:        property.CompareData,
		}
		for _, added := range result {
			if added == condition {
				return nil, fmt.Sprintf("условие %v указано повторно", property.Title)
			}
		}
		result = append(result, condition)
	}
	return result, ""
}

// CheckExclusive: у компании не больше одного этапа проигрыша, поставки и заключения сделки
func CheckExclusive(list []dbmodels.StageConfig, id string, data opportunityapimodels.StageConfigData) string {
	for _, rec := range list {
		if rec.ID == id {
			continue
		}
		switch {
		case data.IsClosedLost && rec.IsClosedLost:
			return fmt.Sprintf("этап проигрыша уже настроен: %v", rec.Indicator)
		case data.IsDelivery && rec.IsDelivery:
			return fmt.Sprintf("этап поставки уже настроен: %v", rec.Indicator)
		case data.IsDealClosed && rec.IsDealClosed:
			return fmt.Sprintf("этап заключения сделки уже настроен: %v", rec.Indicator)
		}
	}
	return ""
}

func markOutdated(store opportunitystore.Provider, tenantID, companyID string) error {
	count, err := store.MarkStageOutdated(tenantID, companyID)
	if err != nil {
		return errors.Wrap(err, "ошибка отметки сделок для пересчета этапа")
	}
	if count != 0 {
		log.
			WithField("tenant_id", tenantID).
			WithField("company_id", companyID).
			Infof("сделок отмечено для пересчета этапа: %v", count)
	}
	return nil
}
