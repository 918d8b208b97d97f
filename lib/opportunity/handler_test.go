package opportunityhandler

import (
	opportunitystagehandler "sales-pipeline-backend/lib/opportunity-stage"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	quotationstore "sales-pipeline-backend/lib/quotation/store"
	saleorderstore "sales-pipeline-backend/lib/sale-order/store"
	opportunityapimodels "sales-pipeline-backend/models/api/opportunity"
	dbmodels "sales-pipeline-backend/models/db"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeOpportunityStore struct {
	opportunitystore.Provider
	recs    map[string]dbmodels.Opportunity
	updates map[string]map[string]interface{}
}

func (f *fakeOpportunityStore) GetByID(tenantID, id string) (*dbmodels.Opportunity, error) {
	rec, ok := f.recs[id]
	if !ok || rec.TenantID != tenantID {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeOpportunityStore) Update(tenantID, id string, updMap map[string]interface{}) error {
	f.updates[id] = updMap
	return nil
}

type fakeQuotationStore struct {
	quotationstore.Provider
	recs map[string]dbmodels.Quotation
}

func (f fakeQuotationStore) GetByID(tenantID, id string) (*dbmodels.Quotation, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeSaleOrderStore struct {
	saleorderstore.Provider
	recs map[string]dbmodels.SaleOrder
}

func (f fakeSaleOrderStore) GetByID(tenantID, id string) (*dbmodels.SaleOrder, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func newOpportunity(id, companyID string, isClosed bool) dbmodels.Opportunity {
	rec := dbmodels.Opportunity{IsClosed: isClosed}
	rec.ID = id
	rec.TenantID = "tenant"
	rec.CompanyID = companyID
	return rec
}

func newTestHandler() (impl, *fakeOpportunityStore) {
	store := &fakeOpportunityStore{
		recs: map[string]dbmodels.Opportunity{
			"open":   newOpportunity("open", "company", false),
			"closed": newOpportunity("closed", "company", true),
		},
		updates: map[string]map[string]interface{}{},
	}
	quotation := dbmodels.Quotation{}
	quotation.CompanyID = "company"
	otherQuotation := dbmodels.Quotation{}
	otherQuotation.CompanyID = "other"
	saleOrder := dbmodels.SaleOrder{}
	saleOrder.CompanyID = "company"
	return impl{
		store: store,
		quotationStore: fakeQuotationStore{recs: map[string]dbmodels.Quotation{
			"q1": quotation,
			"q2": otherQuotation,
		}},
		saleOrderStore: fakeSaleOrderStore{recs: map[string]dbmodels.SaleOrder{
			"so1": saleOrder,
		}},
	}, store
}

func TestCheckDependency(t *testing.T) {
	h, _ := newTestHandler()

	t.Run(`linked documents check`, func(t *testing.T) {
		hMsg, err := h.checkDependency("tenant", opportunityapimodels.OpportunityData{
			CompanyID:   "company",
			QuotationID: "q1",
			SaleOrderID: "so1",
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
	})

	t.Run(`other company quotation check`, func(t *testing.T) {
		hMsg, err := h.checkDependency("tenant", opportunityapimodels.OpportunityData{
			CompanyID:   "company",
			QuotationID: "q2",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})

	t.Run(`missing sale order check`, func(t *testing.T) {
		hMsg, err := h.checkDependency("tenant", opportunityapimodels.OpportunityData{
			CompanyID:   "company",
			SaleOrderID: "missing",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})
}

func TestClose(t *testing.T) {
	t.Run(`close open opportunity check`, func(t *testing.T) {
		h, store := newTestHandler()
		hMsg, err := h.Close("tenant", "open")
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.Equal(t, true, store.updates["open"]["is_closed"])
		require.Equal(t, false, store.updates["open"]["stage_outdated"])
	})

	t.Run(`closed opportunity is read only check`, func(t *testing.T) {
		h, store := newTestHandler()
		hMsg, err := h.Close("tenant", "closed")
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
		require.Empty(t, store.updates)

		hMsg, err = h.Update("tenant", "closed", opportunityapimodels.OpportunityData{CompanyID: "company"})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})

	t.Run(`not found check`, func(t *testing.T) {
		h, _ := newTestHandler()
		hMsg, err := h.Close("other-tenant", "open")
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)

		_, err = h.GetByID("tenant", "missing")
		require.True(t, errors.Is(err, opportunitystagehandler.ErrOpportunityNotFound))
	})

	t.Run(`company change check`, func(t *testing.T) {
		h, store := newTestHandler()
		hMsg, err := h.Update("tenant", "open", opportunityapimodels.OpportunityData{CompanyID: "other"})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
		require.Empty(t, store.updates)
	})
}

func TestNewCode(t *testing.T) {
	t.Run(`code format check`, func(t *testing.T) {
		code := newCode()
		require.True(t, strings.HasPrefix(code, "OPP-"))
		require.Len(t, code, 12)
		require.NotEqual(t, code, newCode())
	})
}
