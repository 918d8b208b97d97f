package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestStageMetrics(t *testing.T) {
	t.Run(`resolution counter check`, func(t *testing.T) {
		before := testutil.ToFloat64(stageResolutions.WithLabelValues(ResultBusy))
		ObserveStageResolution(time.Now(), ResultBusy)
		require.Equal(t, before+1, testutil.ToFloat64(stageResolutions.WithLabelValues(ResultBusy)))
	})

	t.Run(`transition counter check`, func(t *testing.T) {
		before := testutil.ToFloat64(stageTransitions.WithLabelValues("deal_closed"))
		StageTransition("deal_closed")
		require.Equal(t, before+1, testutil.ToFloat64(stageTransitions.WithLabelValues("deal_closed")))
	})

	t.Run(`outdated counter check`, func(t *testing.T) {
		before := testutil.ToFloat64(outdatedProcessed)
		OutdatedProcessed(3)
		require.Equal(t, before+3, testutil.ToFloat64(outdatedProcessed))
	})

	t.Run(`handler check`, func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body, err := io.ReadAll(rec.Body)
		require.Nil(t, err)
		require.Contains(t, string(body), "sales_pipeline_stage_resolutions_total")
	})
}
