package offset

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	paging "github.com/nrfta/filterpage-go"
)

// Metrics records how pages were resolved. Create it once per registry and
// share it between paginators.
type Metrics struct {
	// Pages counts resolved pages by count case.
	Pages *prometheus.CounterVec

	// RoundTrips counts store queries issued by paginators.
	RoundTrips prometheus.Counter

	// Duration is the time spent in store queries per page.
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the paginator metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Pages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filterpage_pages_total",
				Help: "Total number of resolved pages by count case",
			},
			[]string{"count_case"},
		),
		RoundTrips: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "filterpage_store_round_trips_total",
				Help: "Total number of store queries issued by paginators",
			},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filterpage_page_duration_seconds",
				Help:    "Store time spent resolving a page in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"count_case"},
		),
	}
}

func (m *Metrics) observe(countCase paging.CountCase, roundTrips int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Pages.WithLabelValues(string(countCase)).Inc()
	m.RoundTrips.Add(float64(roundTrips))
	m.Duration.WithLabelValues(string(countCase)).Observe(elapsed.Seconds())
}
