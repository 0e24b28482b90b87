package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DatasetLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chain_atlas_dataset_load_seconds",
			Help:    "Time to load, validate and profile a dataset",
			Buckets: prometheus.DefBuckets,
		},
	)

	SessionsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chain_atlas_sessions_opened_total",
			Help: "Session open attempts by outcome",
		},
		[]string{"status"},
	)

	SessionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chain_atlas_sessions_open",
			Help: "Currently open sessions",
		},
	)

	RowsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chain_atlas_rows_dropped_total",
			Help: "Raw rows dropped during validation",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Routers are
// rebuilt freely in tests, so registration is guarded to run once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(DatasetLoadDuration)
		prometheus.MustRegister(SessionsOpened)
		prometheus.MustRegister(SessionsOpen)
		prometheus.MustRegister(RowsDropped)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
