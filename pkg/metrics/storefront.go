package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records cart, quiz and checkout activity. A nil *Storefront is
// valid and records nothing.
type Storefront struct {
	cartMutations    *prometheus.CounterVec
	snapshotFailures *prometheus.CounterVec
	recommendations  *prometheus.CounterVec
	advisorFallbacks *prometheus.CounterVec
	quizProcessing   prometheus.Histogram
	handoffs         *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	m := &Storefront{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lushka_cart_mutations_total",
			Help: "Completed cart mutations by operation.",
		}, []string{"op"}),
		snapshotFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lushka_cart_snapshot_failures_total",
			Help: "Cart snapshot load/save failures by stage.",
		}, []string{"stage"}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lushka_recommendations_total",
			Help: "Recommendations produced by source.",
		}, []string{"source"}),
		advisorFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lushka_advisor_fallbacks_total",
			Help: "Advisor results discarded in favour of the rule-based filter, by reason.",
		}, []string{"reason"}),
		quizProcessing: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lushka_quiz_processing_seconds",
			Help:    "Time from the final quiz answer to a settled recommendation.",
			Buckets: []float64{0.5, 1, 1.5, 2, 3, 5, 10},
		}),
		handoffs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lushka_checkout_handoffs_total",
			Help: "WhatsApp handoff links generated by kind.",
		}, []string{"kind"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lushka_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
	reg.MustRegister(
		m.cartMutations,
		m.snapshotFailures,
		m.recommendations,
		m.advisorFallbacks,
		m.quizProcessing,
		m.handoffs,
		m.httpDuration,
	)
	return m
}

func (m *Storefront) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *Storefront) IncSnapshotFailure(stage string) {
	if m == nil || m.snapshotFailures == nil {
		return
	}
	m.snapshotFailures.WithLabelValues(normalizeLabel(stage)).Inc()
}

func (m *Storefront) IncRecommendation(source string) {
	if m == nil || m.recommendations == nil {
		return
	}
	m.recommendations.WithLabelValues(normalizeLabel(source)).Inc()
}

func (m *Storefront) IncAdvisorFallback(reason string) {
	if m == nil || m.advisorFallbacks == nil {
		return
	}
	m.advisorFallbacks.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *Storefront) ObserveQuizProcessing(d time.Duration) {
	if m == nil || m.quizProcessing == nil {
		return
	}
	m.quizProcessing.Observe(d.Seconds())
}

func (m *Storefront) IncHandoff(kind string) {
	if m == nil || m.handoffs == nil {
		return
	}
	m.handoffs.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *Storefront) ObserveHTTP(method string, status int, d time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(normalizeLabel(method), strconv.Itoa(status)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
