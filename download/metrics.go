package download

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts downloads for a Prometheus registry.
type Metrics struct {
	Requests *prometheus.CounterVec
	Bytes    prometheus.Counter
	Duration prometheus.Histogram
}

// NewMetrics registers the download metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vikcoord",
			Subsystem: "download",
			Name:      "requests_total",
			Help:      "Total downloads by result",
		}, []string{"result"}),
		Bytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vikcoord",
			Subsystem: "download",
			Name:      "bytes_total",
			Help:      "Total bytes downloaded",
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vikcoord",
			Subsystem: "download",
			Name:      "duration_seconds",
			Help:      "Download latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) observe(n int64, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(result(err)).Inc()
	m.Bytes.Add(float64(n))
	m.Duration.Observe(took.Seconds())
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrHTTPStatus):
		return "http_error"
	default:
		return "error"
	}
}
