package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                        sync.Once
	metricsRouter               *chi.Mux
	transitionDuration          *prometheus.HistogramVec
	totalStakedGauge            prometheus.Gauge
	rewardPerUnitGauge          prometheus.Gauge
	stakedAccountsGauge         prometheus.Gauge
	unlockedAccountsGauge       prometheus.Gauge
	ledgerClientLatency         *prometheus.HistogramVec
	pollerDurationHistogram     *prometheus.HistogramVec
	queueSendErrorCounter       prometheus.Counter
	snapshotPersistErrorCounter prometheus.Counter
	dbLatency                   *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	transitionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staking_transition_duration_seconds",
			Help:    "Histogram of staking transition durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	totalStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_total_staked",
			Help: "Sum of all active staked principal.",
		},
	)

	rewardPerUnitGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_reward_per_unit_stored",
			Help: "Stored reward-per-unit accumulator (scaled).",
		},
	)

	stakedAccountsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_staked_accounts",
			Help: "Number of accounts with active principal.",
		},
	)

	unlockedAccountsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_unlocked_accounts",
			Help: "Number of staked accounts past their lock window.",
		},
	)

	ledgerClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "token_ledger_client_latency_seconds",
			Help:    "Histogram of token ledger call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	snapshotPersistErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_persist_error_count",
			Help: "The total number of failed pool snapshot writes",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_latency_seconds",
			Help:    "Histogram of database call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		transitionDuration,
		totalStakedGauge,
		rewardPerUnitGauge,
		stakedAccountsGauge,
		unlockedAccountsGauge,
		ledgerClientLatency,
		pollerDurationHistogram,
		queueSendErrorCounter,
		snapshotPersistErrorCounter,
		dbLatency,
	)
}

// StartTransitionDurationTimer starts a timer for one staking transition.
// The returned function records the duration with the outcome label.
func StartTransitionDurationTimer(operation string) func(failure bool) {
	if transitionDuration == nil {
		return func(bool) {}
	}

	startTime := time.Now()
	return func(failure bool) {
		status := Success
		if failure {
			status = Error
		}
		transitionDuration.WithLabelValues(operation, status.String()).
			Observe(time.Since(startTime).Seconds())
	}
}

func RecordPoolGauges(totalStaked, rewardPerUnit float64, stakedAccounts, unlockedAccounts int) {
	if totalStakedGauge == nil {
		return
	}

	totalStakedGauge.Set(totalStaked)
	rewardPerUnitGauge.Set(rewardPerUnit)
	stakedAccountsGauge.Set(float64(stakedAccounts))
	unlockedAccountsGauge.Set(float64(unlockedAccounts))
}

func RecordLedgerClientLatency(d time.Duration, method string, failure bool) {
	if ledgerClientLatency == nil {
		return
	}

	status := Success
	if failure {
		status = Error
	}
	ledgerClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

// RecordPollerDuration wraps a poll method so each run is timed and
// labelled with its outcome.
func RecordPollerDuration(pollerType string, pollMethod func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if pollerDurationHistogram == nil {
			return pollMethod(ctx)
		}

		startTime := time.Now()
		err := pollMethod(ctx)

		status := Success
		if err != nil {
			status = Error
		}
		pollerDurationHistogram.WithLabelValues(pollerType, status.String()).
			Observe(time.Since(startTime).Seconds())

		return err
	}
}

func RecordQueueSendError() {
	if queueSendErrorCounter == nil {
		return
	}
	queueSendErrorCounter.Inc()
}

func RecordSnapshotPersistError() {
	if snapshotPersistErrorCounter == nil {
		return
	}
	snapshotPersistErrorCounter.Inc()
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	if dbLatency == nil {
		return
	}

	status := Success
	if failure {
		status = Error
	}
	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}
