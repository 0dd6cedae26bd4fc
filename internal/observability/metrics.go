package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemption_requests_total",
			Help: "Total redemption evaluation requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "redemption_request_duration_seconds",
		Help:    "Request latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "redemption_in_flight",
		Help: "In-flight HTTP requests",
	})
	OptionsAnalyzed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemption_options_analyzed_total",
			Help: "Valued options per category over all evaluations",
		}, []string{"category"},
	)
	BestCPM = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "redemption_best_cpm",
		Help:    "Cents-per-point of the best overall option per evaluation",
		Buckets: []float64{0.5, 1, 1.5, 2, 3, 5, 10},
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, Latency, InFlight, OptionsAnalyzed, BestCPM)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

type rec struct {
	http.ResponseWriter
	code int
}

func (r *rec) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}
