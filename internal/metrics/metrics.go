package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives one observation per gateway operation. outcome is "ok" or an error kind.
type Recorder interface {
	Observe(operation, outcome string, elapsed time.Duration)
	OrphanedUpload()
}

type PrometheusRecorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	orphans    prometheus.Counter
}

func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wedding_gateway_operations_total",
			Help: "Gateway operations by outcome (ok or error kind)",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wedding_gateway_operation_duration_seconds",
			Help:    "Time spent in one gateway operation, remote calls included",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"operation"}),
		orphans: factory.NewCounter(prometheus.CounterOpts{
			Name: "wedding_gateway_orphaned_uploads_total",
			Help: "Objects stored without a guest_photos row",
		}),
	}
}

func (r *PrometheusRecorder) Observe(operation, outcome string, elapsed time.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (r *PrometheusRecorder) OrphanedUpload() {
	r.orphans.Inc()
}

type NopRecorder struct{}

func (NopRecorder) Observe(string, string, time.Duration) {}
func (NopRecorder) OrphanedUpload()                       {}
