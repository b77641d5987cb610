package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "surfcast_"

	ResultSuccess = "success"
	ResultError   = "error"

	SourceModel = "model"
	SourceBuoy  = "buoy"
)

var (
	registerOnce sync.Once

	upstreamFetches *prometheus.CounterVec
	upstreamRetries *prometheus.CounterVec

	cacheLookups *prometheus.CounterVec

	conditionsFallbacks prometheus.Counter

	alertsEvaluated prometheus.Counter
	alertsFired     prometheus.Counter
	alertsErrored   prometheus.Counter

	evaluationLatency prometheus.Histogram
)

// Init registers the surfcast metrics with the given registerer. Callers
// that never Init get no-op instrumentation, which is what unit tests want.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		upstreamFetches = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upstream_fetches_total",
				Help: "Upstream fetches by source and result",
			},
			[]string{"source", "result"},
		)
		upstreamRetries = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upstream_retries_total",
				Help: "Upstream fetch retries by source",
			},
			[]string{"source"},
		)
		cacheLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cache_lookups_total",
				Help: "Forecast cache lookups by tier and outcome",
			},
			[]string{"tier", "outcome"},
		)
		conditionsFallbacks = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "conditions_fallbacks_total",
				Help: "Current-conditions requests served from the model fallback",
			},
		)
		alertsEvaluated = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_evaluated_total",
				Help: "Alert rules evaluated",
			},
		)
		alertsFired = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_fired_total",
				Help: "Alert rules that fired a notification",
			},
		)
		alertsErrored = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_errored_total",
				Help: "Alert rules skipped due to a per-rule failure",
			},
		)
		evaluationLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "alert_evaluation_seconds",
				Help:    "Duration of a full alert evaluation pass",
				Buckets: prometheus.DefBuckets,
			},
		)

		reg.MustRegister(
			upstreamFetches, upstreamRetries, cacheLookups,
			conditionsFallbacks, alertsEvaluated, alertsFired, alertsErrored,
			evaluationLatency,
		)
	})
}

func UpstreamFetch(source, result string) {
	if upstreamFetches != nil {
		upstreamFetches.WithLabelValues(source, result).Inc()
	}
}

func UpstreamRetry(source string) {
	if upstreamRetries != nil {
		upstreamRetries.WithLabelValues(source).Inc()
	}
}

func CacheLookup(tier, outcome string) {
	if cacheLookups != nil {
		cacheLookups.WithLabelValues(tier, outcome).Inc()
	}
}

func ConditionsFallback() {
	if conditionsFallbacks != nil {
		conditionsFallbacks.Inc()
	}
}

func AlertEvaluated() {
	if alertsEvaluated != nil {
		alertsEvaluated.Inc()
	}
}

func AlertFired() {
	if alertsFired != nil {
		alertsFired.Inc()
	}
}

func AlertErrored() {
	if alertsErrored != nil {
		alertsErrored.Inc()
	}
}

func ObserveEvaluationSeconds(seconds float64) {
	if evaluationLatency != nil {
		evaluationLatency.Observe(seconds)
	}
}
