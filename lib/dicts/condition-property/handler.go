package conditionpropertyprovider

import (
	"sales-pipeline-backend/db"
	store "sales-pipeline-backend/lib/dicts/condition-property/store"
	initchecker "sales-pipeline-backend/lib/utils/init-checker"
	"sales-pipeline-backend/models"
	dictapimodels "sales-pipeline-backend/models/api/dict"
	dbmodels "sales-pipeline-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	List() (list []dictapimodels.ConditionPropertyView, err error)
	// Preload заполняет справочник условий, существующие записи обновляются
	Preload() error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) List() ([]dictapimodels.ConditionPropertyView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения справочника условий")
	}
	result := make([]dictapimodels.ConditionPropertyView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.ConditionPropertyConvert(rec))
	}
	return result, nil
}

func (i impl) Preload() error {
	for _, preset := range models.ConditionPropertyPresets {
		rec := dbmodels.ConditionProperty{
			BaseModel: dbmodels.BaseModel{
				ID: preset.ID,
			},
			Title:       preset.Title,
			CompareData: preset.CompareData,
		}
		err := i.store.Add(rec)
		if err != nil {
			return errors.Wrapf(err, "ошибка добавления условия %v", preset.Title)
		}
	}
	return nil
}
