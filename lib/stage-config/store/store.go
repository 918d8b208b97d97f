package stageconfigstore

import (
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.StageConfig) (id string, err error)
	GetByID(tenantID, id string) (*dbmodels.StageConfig, error)
	GetForUpdate(tenantID, id string) (*dbmodels.StageConfig, error)
	Update(tenantID, id string, rec dbmodels.StageConfig) error
	Delete(tenantID, id string) error
	List(tenantID, companyID string) (list []dbmodels.StageConfig, err error)
	ListForShare(tenantID, companyID string) (list []dbmodels.StageConfig, err error)
	IsUsed(tenantID, id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StageConfig) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(tenantID, id string) (*dbmodels.StageConfig, error) {
	rec := dbmodels.StageConfig{}
	err := i.db.
		Model(&dbmodels.StageConfig{}).
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
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

func (i impl) GetForUpdate(tenantID, id string) (*dbmodels.StageConfig, error) {
	rec := dbmodels.StageConfig{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
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

func (i impl) Update(tenantID, id string, rec dbmodels.StageConfig) error {
	tx := i.db.
		Model(&dbmodels.StageConfig{}).
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
		Select("indicator", "description", "win_rate", "logical_operator", "conditions",
			"is_closed_lost", "is_delivery", "is_deal_closed").
		Updates(&rec)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(tenantID, id string) error {
	err := i.db.
		Where("id = ?", id).
		Where("tenant_id = ?", tenantID).
		Delete(&dbmodels.StageConfig{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

// List возвращает этапы компании в порядке возрастания вероятности выигрыша
func (i impl) List(tenantID, companyID string) (list []dbmodels.StageConfig, err error) {
	list = []dbmodels.StageConfig{}
	err = i.db.
		Where("tenant_id = ?", tenantID).
		Where("company_id = ?", companyID).
		Order("win_rate").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListForShare читает этапы компании под разделяемой блокировкой, удаление этапа ждет окончания транзакции
func (i impl) ListForShare(tenantID, companyID string) (list []dbmodels.StageConfig, err error) {
	list = []dbmodels.StageConfig{}
	err = i.db.
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("tenant_id = ?", tenantID).
		Where("company_id = ?", companyID).
		Order("win_rate").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) IsUsed(tenantID, id string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.OpportunityStage{}).
		Where("tenant_id = ?", tenantID).
		Where("stage_id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
