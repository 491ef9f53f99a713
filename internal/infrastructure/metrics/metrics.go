package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics defines our Prometheus metrics
type Metrics struct {
	RoomsCreated    prometheus.Counter
	RoomsExpired    prometheus.Counter
	RoomJoins       *prometheus.CounterVec
	ActiveRooms     prometheus.Gauge
	RequestDuration *prometheus.HistogramVec
}

// New registers the metric set against reg. Tests pass a private registry
// so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RoomsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "quizmatch_rooms_created_total",
			Help: "Total number of rooms created",
		}),
		RoomsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "quizmatch_rooms_expired_total",
			Help: "Total number of rooms evicted by expiry sweeps",
		}),
		RoomJoins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quizmatch_room_joins_total",
			Help: "Join attempts partitioned by outcome",
		}, []string{"outcome"}),
		ActiveRooms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "quizmatch_rooms_active",
			Help: "Number of live rooms in the store",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quizmatch_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
