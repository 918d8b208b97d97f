package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sales_pipeline"

const (
	ResultOk       = "ok"
	ResultBusy     = "busy"
	ResultMismatch = "company_mismatch"
	ResultNotFound = "not_found"
	ResultCanceled = "canceled"
	ResultError    = "error"
)

var (
	stageResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_resolutions_total",
		Help:      "Количество пересчетов этапа сделки по результату",
	}, []string{"result"})

	stageResolutionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_resolution_duration_seconds",
		Help:      "Длительность пересчета этапа сделки",
		Buckets:   prometheus.DefBuckets,
	})

	stageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_transitions_total",
		Help:      "Переходы сделок на терминальные этапы",
	}, []string{"kind"})

	outdatedProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_outdated_processed_total",
		Help:      "Сделки, пересчитанные фоновой задачей после изменения этапов",
	})
)

func ObserveStageResolution(started time.Time, result string) {
	stageResolutions.WithLabelValues(result).Inc()
	stageResolutionDuration.Observe(time.Since(started).Seconds())
}

func StageTransition(kind string) {
	stageTransitions.WithLabelValues(kind).Inc()
}

func OutdatedProcessed(count int) {
	outdatedProcessed.Add(float64(count))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
