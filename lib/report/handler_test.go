package reporthandler

import (
	"context"
	"errors"
	xlsexport "sales-pipeline-backend/lib/export/xls"
	opportunitystore "sales-pipeline-backend/lib/opportunity/store"
	reportapimodels "sales-pipeline-backend/models/api/report"
	dbmodels "sales-pipeline-backend/models/db"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeOpportunityStore struct {
	opportunitystore.Provider
	totals []dbmodels.PipelineStageTotal
	err    error
}

func (f fakeOpportunityStore) PipelineTotals(tenantID string, filter reportapimodels.PipelineFilter) ([]dbmodels.PipelineStageTotal, error) {
	return f.totals, f.err
}

type fakeFileStore struct {
	uploaded map[string][]byte
}

func (f *fakeFileStore) Upload(ctx context.Context, tenantID, fileName, contentType string, body []byte) (string, error) {
	objectName := tenantID + "/" + fileName
	f.uploaded[objectName] = body
	return objectName, nil
}

func (f *fakeFileStore) PresignedURL(ctx context.Context, objectName, fileName string, ttl time.Duration) (string, error) {
	return "https://s3.local/" + objectName, nil
}

func newTestHandler(store opportunitystore.Provider, fileStore *fakeFileStore) impl {
	xlsexport.NewHandler()
	h := impl{
		store:      store,
		xlsHandler: xlsexport.Instance,
		presignTTL: time.Hour,
		now: func() time.Time {
			return time.Date(2026, 3, 2, 10, 20, 30, 0, time.UTC)
		},
	}
	if fileStore != nil {
		h.fileStore = fileStore
	}
	return h
}

func stageID(id string) *string {
	return &id
}

func testTotals() []dbmodels.PipelineStageTotal {
	return []dbmodels.PipelineStageTotal{
		{StageID: stageID("s1"), Indicator: "Квалификация", WinRate: 10, Total: 2, BudgetTotal: decimal.NewFromInt(1000)},
		{StageID: stageID("s4"), Indicator: "Переговоры", WinRate: 60, Total: 1, BudgetTotal: decimal.NewFromInt(500)},
	}
}

func TestPipeline(t *testing.T) {
	filter := reportapimodels.PipelineFilter{CompanyID: "c1"}

	t.Run(`summary check`, func(t *testing.T) {
		h := newTestHandler(fakeOpportunityStore{totals: testTotals()}, nil)
		summary, err := h.Pipeline("t1", filter)
		require.Nil(t, err)
		require.Len(t, summary.Rows, 2)
		require.Equal(t, int64(3), summary.Total)
		require.True(t, decimal.NewFromInt(1500).Equal(summary.BudgetTotal))
		require.True(t, decimal.NewFromInt(400).Equal(summary.WeightedBudget))
	})

	t.Run(`store error check`, func(t *testing.T) {
		h := newTestHandler(fakeOpportunityStore{err: errors.New("db down")}, nil)
		_, err := h.Pipeline("t1", filter)
		require.NotNil(t, err)
	})
}

func TestExport(t *testing.T) {
	filter := reportapimodels.PipelineFilter{CompanyID: "c1"}

	t.Run(`xlsx export check`, func(t *testing.T) {
		h := newTestHandler(fakeOpportunityStore{totals: testTotals()}, nil)
		body, contentType, fileName, err := h.Export("t1", filter, reportapimodels.ExportXlsx)
		require.Nil(t, err)
		require.NotEmpty(t, body)
		require.Equal(t, ContentTypeXlsx, contentType)
		require.Equal(t, "pipeline_20260302_102030.xlsx", fileName)
	})

	t.Run(`pdf export without fonts check`, func(t *testing.T) {
		h := newTestHandler(fakeOpportunityStore{totals: testTotals()}, nil)
		h.fontDir = t.TempDir()
		_, _, _, err := h.Export("t1", filter, reportapimodels.ExportPdf)
		require.NotNil(t, err)
	})
}

func TestArchive(t *testing.T) {
	filter := reportapimodels.PipelineFilter{CompanyID: "c1"}

	t.Run(`storage not configured check`, func(t *testing.T) {
		h := newTestHandler(fakeOpportunityStore{totals: testTotals()}, nil)
		_, hMsg, err := h.Archive(context.Background(), "t1", filter, reportapimodels.ExportXlsx)
		require.Nil(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`upload check`, func(t *testing.T) {
		fileStore := &fakeFileStore{uploaded: map[string][]byte{}}
		h := newTestHandler(fakeOpportunityStore{totals: testTotals()}, fileStore)
		view, hMsg, err := h.Archive(context.Background(), "t1", filter, reportapimodels.ExportXlsx)
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "pipeline_20260302_102030.xlsx", view.FileName)
		require.True(t, strings.HasPrefix(view.Url, "https://s3.local/t1/"))
		require.Len(t, fileStore.uploaded, 1)
	})
}
