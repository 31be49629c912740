// Package metrics records run telemetry in a private Prometheus registry
// and exposes it through the node-exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/questpilot/hackquest-bot/internal/domain/progression"
	"github.com/questpilot/hackquest-bot/internal/domain/scheduler"
)

const namespace = "questpilot"

// Collector counts claims, retries and account outcomes.
type Collector struct {
	registry *prometheus.Registry

	claims         *prometheus.CounterVec
	coins          *prometheus.CounterVec
	exp            *prometheus.CounterVec
	retries        *prometheus.CounterVec
	accounts       *prometheus.GaugeVec
	accountSeconds prometheus.Histogram
	passSeconds    prometheus.Gauge
	lastPass       prometheus.Gauge
}

var _ progression.Observer = &Collector{}

func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.claims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_total",
			Help:      "Rewards claimed, by kind",
		},
		[]string{"kind"},
	)
	c.coins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coins_total",
			Help:      "Coins earned from claims, by kind",
		},
		[]string{"kind"},
	)
	c.exp = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exp_total",
			Help:      "Experience earned from claims, by kind",
		},
		[]string{"kind"},
	)
	c.retries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Retried remote operations",
		},
		[]string{"op"},
	)
	c.accounts = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pass",
			Name:      "accounts",
			Help:      "Accounts in the last pass, by result",
		},
		[]string{"result"},
	)
	c.accountSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "account",
		Name:      "duration_seconds",
		Help:      "Time spent on one account",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 10),
	})
	c.passSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "pass",
		Name:      "duration_seconds",
		Help:      "Duration of the last pass",
	})
	c.lastPass = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "pass",
		Name:      "last_timestamp_seconds",
		Help:      "Unix time the last pass finished",
	})

	c.registry.MustRegister(
		c.claims, c.coins, c.exp, c.retries,
		c.accounts, c.accountSeconds, c.passSeconds, c.lastPass,
	)
	return c
}

func (c *Collector) Claimed(kind string, coins, exp int64) {
	c.claims.WithLabelValues(kind).Inc()
	c.coins.WithLabelValues(kind).Add(float64(coins))
	c.exp.WithLabelValues(kind).Add(float64(exp))
}

func (c *Collector) Retried(op string) {
	c.retries.WithLabelValues(op).Inc()
}

// RecordPass replaces the account gauges with the outcome of a pass.
func (c *Collector) RecordPass(summary scheduler.Summary) {
	c.accounts.WithLabelValues("succeeded").Set(float64(summary.Succeeded()))
	c.accounts.WithLabelValues("failed").Set(float64(summary.Failed()))
	for _, o := range summary.Outcomes {
		if o.Took > 0 {
			c.accountSeconds.Observe(o.Took.Seconds())
		}
	}
	c.passSeconds.Set(summary.Took.Seconds())
	c.lastPass.SetToCurrentTime()
}

// WriteTextfile writes the registry to path atomically. An empty path is a
// no-op.
func (c *Collector) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
