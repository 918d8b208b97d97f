package conditionpropertyprovider

import (
	store "sales-pipeline-backend/lib/dicts/condition-property/store"
	"sales-pipeline-backend/models"
	dbmodels "sales-pipeline-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	store.Provider
	recs map[string]dbmodels.ConditionProperty
}

func (f *fakeStore) Add(rec dbmodels.ConditionProperty) error {
	f.recs[rec.ID] = rec
	return nil
}

func (f *fakeStore) List() ([]dbmodels.ConditionProperty, error) {
	result := make([]dbmodels.ConditionProperty, 0, len(f.recs))
	for _, rec := range f.recs {
		result = append(result, rec)
	}
	return result, nil
}

func TestPreload(t *testing.T) {
	t.Run(`preload is repeatable check`, func(t *testing.T) {
		s := &fakeStore{recs: map[string]dbmodels.ConditionProperty{}}
		h := impl{store: s}
		require.Nil(t, h.Preload())
		require.Nil(t, h.Preload())
		require.Len(t, s.recs, len(models.ConditionPropertyPresets))

		list, err := h.List()
		require.Nil(t, err)
		require.Len(t, list, len(models.ConditionPropertyPresets))
		for _, item := range list {
			require.Equal(t, []models.ComparisonOperator{models.OperatorEqual, models.OperatorNotEqual}, item.Operators)
		}
	})

	t.Run(`unique preset ids and titles check`, func(t *testing.T) {
		ids := map[string]bool{}
		titles := map[models.ConditionPropertyTitle]bool{}
		for _, preset := range models.ConditionPropertyPresets {
			require.False(t, ids[preset.ID], preset.ID)
			require.False(t, titles[preset.Title], preset.Title)
			ids[preset.ID] = true
			titles[preset.Title] = true
		}
	})
}
