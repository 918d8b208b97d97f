package conditionpropertystore

import (
	dbmodels "sales-pipeline-backend/models/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Add(rec dbmodels.ConditionProperty) error
	List() (list []dbmodels.ConditionProperty, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Add добавляет условие, существующая запись с тем же ид обновляется
func (i impl) Add(rec dbmodels.ConditionProperty) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "compare_data", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) List() (list []dbmodels.ConditionProperty, err error) {
	list = []dbmodels.ConditionProperty{}
	err = i.db.
		Order("title").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
