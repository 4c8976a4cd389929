package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatusCounter reports how many forms sit in each status.
type StatusCounter func(ctx context.Context) (map[string]int64, error)

type formsCollector struct {
	count StatusCounter
	desc  *prometheus.Desc
}

// NewFormsByStatusCollector builds a collector that queries count on every scrape.
func NewFormsByStatusCollector(count StatusCounter) prometheus.Collector {
	return &formsCollector{
		count: count,
		desc: prometheus.NewDesc(
			"formflow_forms",
			"Forms currently in each lifecycle status.",
			[]string{"status"}, nil,
		),
	}
}

func (c *formsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *formsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.count(ctx)
	if err != nil {
		slog.Warn("metrics: count forms by status failed", "error", err)
		return
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), status)
	}
}
