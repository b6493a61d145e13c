package server

import (
	"net/http"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	promRegistry = prom.NewRegistry()

	runsTotal = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "navbuilder",
		Name:      "runs_total",
		Help:      "Check/render runs processed, by outcome",
	}, []string{"status"})

	httpRequestsTotal = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "navbuilder",
		Name:      "http_requests_total",
		Help:      "Preview server requests, by status class",
	}, []string{"class"})

	lastRunPageRefs = prom.NewGauge(prom.GaugeOpts{
		Namespace: "navbuilder",
		Name:      "last_run_page_refs",
		Help:      "Page references in the most recent run",
	})

	lastRunUnresolved = prom.NewGauge(prom.GaugeOpts{
		Namespace: "navbuilder",
		Name:      "last_run_unresolved",
		Help:      "Unresolved page references in the most recent run",
	})
)

var registerMetricsOnce sync.Once

func registerBaseCollectors() {
	registerMetricsOnce.Do(func() {
		promRegistry.MustRegister(runsTotal, httpRequestsTotal, lastRunPageRefs, lastRunUnresolved)
		promRegistry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	})
}

// ObserveRun updates run metrics after a check/render pass.
func ObserveRun(status string, pageRefs, unresolved int) {
	registerBaseCollectors()
	runsTotal.WithLabelValues(status).Inc()
	lastRunPageRefs.Set(float64(pageRefs))
	lastRunUnresolved.Set(float64(unresolved))
}

func metricsHandler() http.Handler {
	registerBaseCollectors()
	return promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})
}
