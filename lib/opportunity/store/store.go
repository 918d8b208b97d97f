package opportunitystore

import (
	"sales-pipeline-backend/lib/utils/helpers"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	reportapimodels "sales-pipeline-backend/models/api/report"
	dbmodels "sales-pipeline-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Opportunity) (id string, err error)
	GetByID(tenantID, id string) (rec *dbmodels.Opportunity, err error)
	GetForUpdate(tenantID, id string) (rec *dbmodels.Opportunity, err error)
	Update(tenantID, id string, updMap map[string]interface{}) error
	ListCount(tenantID string, filter opportunityapimodels.OpportunityFilter) (count int64, err error)
	List(tenantID string, filter opportunityapimodels.OpportunityFilter) (list []dbmodels.Opportunity, err error)
	ListIDsByQuotation(tenantID, quotationID string) (ids []string, err error)
	ListIDsBySaleOrder(tenantID, saleOrderID string) (ids []string, err error)
	MarkStageOutdated(tenantID, companyID string) (count int64, err error)
	ListStageOutdated(limit int) (list []dbmodels.Opportunity, err error)
	MarkStageRetry(tenantID, id string) error
	ReplaceProductLines(tenantID, id string, lines []dbmodels.OpportunityProductLine) error
	ReplaceCompetitors(tenantID, id string, competitors []dbmodels.OpportunityCompetitor) error
	PipelineTotals(tenantID string, filter reportapimodels.PipelineFilter) (list []dbmodels.PipelineStageTotal, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Opportunity) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(tenantID, id string) (*dbmodels.Opportunity, error) {
	rec := dbmodels.Opportunity{}
	err := i.db.
		Model(&dbmodels.Opportunity{}).
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetForUpdate блокирует строку сделки до конца транзакции и загружает связанные документы
func (i impl) GetForUpdate(tenantID, id string) (*dbmodels.Opportunity, error) {
	var lockedID string
	err := i.db.
		Model(&dbmodels.Opportunity{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
		Take(&lockedID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка блокировки сделки")
	}
	return i.GetByID(tenantID, lockedID)
}

func (i impl) Update(tenantID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Opportunity{}).
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) ListCount(tenantID string, filter opportunityapimodels.OpportunityFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Opportunity{}).
		Where("tenant_id = ?", tenantID)
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества сделок")
		return 0, errors.New("ошибка получения общего количества сделок")
	}
	return rowCount, nil
}

func (i impl) List(tenantID string, filter opportunityapimodels.OpportunityFilter) (list []dbmodels.Opportunity, err error) {
	list = []dbmodels.Opportunity{}
	tx := i.db.
		Model(dbmodels.Opportunity{}).
		Where("tenant_id = ?", tenantID)
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	tx.Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit)
	err = tx.Preload("CurrentStage").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListIDsByQuotation возвращает открытые сделки по коммерческому предложению
func (i impl) ListIDsByQuotation(tenantID, quotationID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(dbmodels.Opportunity{}).
		Where("tenant_id = ?", tenantID).
		Where("quotation_id = ?", quotationID).
		Where("is_closed = ?", false).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) ListIDsBySaleOrder(tenantID, saleOrderID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(dbmodels.Opportunity{}).
		Where("tenant_id = ?", tenantID).
		Where("sale_order_id = ?", saleOrderID).
		Where("is_closed = ?", false).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) MarkStageOutdated(tenantID, companyID string) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.Opportunity{}).
		Where("tenant_id = ?", tenantID).
		Where("company_id = ?", companyID).
		Where("is_closed = ?", false).
		Update("stage_outdated", true)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) ListStageOutdated(limit int) (list []dbmodels.Opportunity, err error) {
	list = []dbmodels.Opportunity{}
	err = i.db.
		Model(dbmodels.Opportunity{}).
		Select("id", "tenant_id", "company_id").
		Where("stage_outdated = ?", true).
		Where("is_closed = ?", false).
		Order("stage_retry_at nulls first").
		Order("updated_at").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// MarkStageRetry отодвигает сделку с неудачным пересчетом в конец очереди
func (i impl) MarkStageRetry(tenantID, id string) error {
	return i.db.
		Model(dbmodels.Opportunity{}).
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
		UpdateColumn("stage_retry_at", time.Now()).
		Error
}

func (i impl) ReplaceProductLines(tenantID, id string, lines []dbmodels.OpportunityProductLine) error {
	err := i.db.
		Where("tenant_id = ?", tenantID).
		Where("opportunity_id = ?", id).
		Delete(&dbmodels.OpportunityProductLine{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления продуктов сделки")
	}
	if len(lines) == 0 {
		return nil
	}
	for k := range lines {
		lines[k].TenantID = tenantID
		lines[k].OpportunityID = id
	}
	err = i.db.Create(&lines).Error
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения продуктов сделки")
	}
	return nil
}

func (i impl) ReplaceCompetitors(tenantID, id string, competitors []dbmodels.OpportunityCompetitor) error {
	err := i.db.
		Where("tenant_id = ?", tenantID).
		Where("opportunity_id = ?", id).
		Delete(&dbmodels.OpportunityCompetitor{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления конкурентов сделки")
	}
	if len(competitors) == 0 {
		return nil
	}
	for k := range competitors {
		competitors[k].TenantID = tenantID
		competitors[k].OpportunityID = id
	}
	err = i.db.Create(&competitors).Error
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения конкурентов сделки")
	}
	return nil
}

func (i impl) PipelineTotals(tenantID string, filter reportapimodels.PipelineFilter) (list []dbmodels.PipelineStageTotal, err error) {
	list = []dbmodels.PipelineStageTotal{}
	tx := i.db.
		Table("opportunities as o").
		Select("o.current_stage_id as stage_id, s.indicator, coalesce(s.win_rate, 0) as win_rate, " +
			"count(o.id) as total, coalesce(sum(o.budget_value), 0) as budget_total").
		Joins("left join opportunity_config_stages as s on s.id = o.current_stage_id").
		Where("o.tenant_id = ?", tenantID).
		Where("o.company_id = ?", filter.CompanyID)
	if !filter.IncludeClosed {
		tx = tx.Where("o.is_closed = ?", false)
	}
	if filter.SalePersonID != "" {
		tx = tx.Where("o.sale_person_id = ?", filter.SalePersonID)
	}
	err = tx.
		Group("o.current_stage_id, s.indicator, s.win_rate").
		Order("coalesce(s.win_rate, 0), s.indicator").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter opportunityapimodels.OpportunityFilter) {
	if filter.CompanyID != "" {
		tx = tx.Where("company_id = ?", filter.CompanyID)
	}
	if filter.StageID != "" {
		tx = tx.Where("current_stage_id = ?", filter.StageID)
	}
	if filter.IsClosed != nil {
		tx = tx.Where("is_closed = ?", *filter.IsClosed)
	}
	if filter.Search != "" {
		search := "%" + helpers.EscapeLike(strings.ToLower(filter.Search)) + "%"
		tx.Where("(LOWER(title) like ? or LOWER(code) like ?)", search, search)
	}
}
