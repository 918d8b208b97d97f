package pdfexport

import (
	"os"
	"path/filepath"
	reportapimodels "sales-pipeline-backend/models/api/report"
	dbmodels "sales-pipeline-backend/models/db"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGeneratePipeline(t *testing.T) {
	t.Run(`missing fonts check`, func(t *testing.T) {
		_, err := GeneratePipeline(t.TempDir(), "Воронка", reportapimodels.PipelineSummaryConvert(nil), time.Now())
		require.NotNil(t, err)
	})

	t.Run(`pipeline pdf check`, func(t *testing.T) {
		fontDir := os.Getenv("PDF_FONT_DIR")
		if fontDir == "" {
			fontDir = "../../../static/font"
		}
		if _, err := os.Stat(filepath.Join(fontDir, "Arial.ttf")); err != nil {
			t.Skip("шрифты для pdf не найдены")
		}
		summary := reportapimodels.PipelineSummaryConvert([]dbmodels.PipelineStageTotal{
			{Indicator: "Квалификация", WinRate: 10, Total: 4, BudgetTotal: decimal.NewFromInt(4000)},
		})
		body, err := GeneratePipeline(fontDir, "Воронка", summary, time.Now())
		require.Nil(t, err)
		require.True(t, len(body) > 4)
		require.Equal(t, "%PDF", string(body[:4]))
	})
}
