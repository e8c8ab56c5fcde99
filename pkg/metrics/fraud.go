package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of one full-graph forward pass
	ForwardPassLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fraud_forward_pass_latency_seconds",
		Help:    "Latency of the relational GCN forward pass over the whole graph",
		Buckets: prometheus.DefBuckets,
	})

	// Seller scoring outcomes: scored, not_found, error
	SellerScoresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fraud_seller_scores_total",
		Help: "Seller fraud scoring requests by outcome",
	}, []string{"outcome"})

	// Calls to external model services by service and outcome
	UpstreamCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fraud_upstream_calls_total",
		Help: "Calls to external model services by service and outcome",
	}, []string{"service", "outcome"})
)

func Init() {
	Register(prometheus.DefaultRegisterer)
}

// Register adds the collectors to reg; used directly by tests with a fresh registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		ForwardPassLatency,
		SellerScoresTotal,
		UpstreamCallsTotal,
	)
}
