package quotationhandler

import (
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	dbmodels "sales-pipeline-backend/models/db"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs    map[string]dbmodels.Quotation
	created []dbmodels.Quotation
}

func (f *fakeStore) Create(rec dbmodels.Quotation) (string, error) {
	f.created = append(f.created, rec)
	return "q-new", nil
}

func (f *fakeStore) GetByID(tenantID, id string) (*dbmodels.Quotation, error) {
	rec, ok := f.recs[id]
	if !ok || rec.TenantID != tenantID {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) Update(tenantID, id string, updMap map[string]interface{}) error {
	return nil
}

func newConfirmed(tenantID, id string) dbmodels.Quotation {
	rec := dbmodels.Quotation{IsConfirmed: true, Title: "КП"}
	rec.ID = id
	rec.TenantID = tenantID
	rec.CompanyID = "c1"
	return rec
}

func TestQuotation(t *testing.T) {
	t.Run(`create check`, func(t *testing.T) {
		store := &fakeStore{}
		h := impl{store: store}
		id, err := h.Create("t1", opportunityapimodels.QuotationData{
			CompanyID:   "c1",
			Title:       "КП",
			TotalAmount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		require.Equal(t, "q-new", id)
		require.Len(t, store.created, 1)
		require.Equal(t, "t1", store.created[0].TenantID)
		require.Equal(t, "c1", store.created[0].CompanyID)
		require.False(t, store.created[0].IsConfirmed)
	})

	t.Run(`not found check`, func(t *testing.T) {
		h := impl{store: &fakeStore{recs: map[string]dbmodels.Quotation{"q1": newConfirmed("t1", "q1")}}}
		_, hMsg, err := h.GetByID("t2", "q1")
		require.NoError(t, err)
		require.NotEqual(t, "", hMsg)

		hMsg, err = h.Confirm("t1", "q2")
		require.NoError(t, err)
		require.NotEqual(t, "", hMsg)
	})

	t.Run(`repeated confirm check`, func(t *testing.T) {
		h := impl{store: &fakeStore{recs: map[string]dbmodels.Quotation{"q1": newConfirmed("t1", "q1")}}}
		hMsg, err := h.Confirm("t1", "q1")
		require.NoError(t, err)
		require.Equal(t, "", hMsg)

		item, hMsg, err := h.GetByID("t1", "q1")
		require.NoError(t, err)
		require.Equal(t, "", hMsg)
		require.True(t, item.IsConfirmed)
		require.Equal(t, "q1", item.ID)
	})
}
