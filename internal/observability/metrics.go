package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счетчики Prometheus для основных операций сервиса
type Metrics struct {
	IncidentsCreated     prometheus.Counter
	IncidentsClosed      prometheus.Counter
	IncidentIDCollisions prometheus.Counter

	// labels: source={local,external}, outcome={hit,miss,error}
	PincodeLookups *prometheus.CounterVec
}

// NewMetrics создает и регистрирует метрики в реестре Prometheus по умолчанию
func NewMetrics() *Metrics {
	m := &Metrics{
		IncidentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_service",
			Name:      "incidents_created_total",
			Help:      "Total incidents created.",
		}),
		IncidentsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_service",
			Name:      "incidents_closed_total",
			Help:      "Total incidents transitioned to CLOSED.",
		}),
		IncidentIDCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_service",
			Name:      "incident_id_collisions_total",
			Help:      "Generated incident IDs rejected by the unique constraint.",
		}),
		PincodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_service",
			Name:      "pincode_lookups_total",
			Help:      "Pincode lookups by source and outcome.",
		}, []string{"source", "outcome"}),
	}

	prometheus.MustRegister(
		m.IncidentsCreated,
		m.IncidentsClosed,
		m.IncidentIDCollisions,
		m.PincodeLookups,
	)

	return m
}
