// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the prometheus instruments a running
// planner exposes: trial throughput, node-arena pressure, and the
// determinized-task caches' hit rates. Grounded on the teacher's
// protocol/nova/metrics.go: one struct of pre-built instruments,
// constructed and registered once, updated by plain method calls from
// the hot path rather than by reaching for a global registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every instrument a search engine reports to.
type Metrics struct {
	trialsRun        prometheus.Counter
	nodesExpanded    prometheus.Counter
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	arenaOccupancy   prometheus.Gauge
	arenaCapacity    prometheus.Gauge
	searchDurationMs prometheus.Histogram
}

// New builds the instrument set and registers it with registerer.
func New(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		trialsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prost_trials_run_total",
			Help: "Number of THTS trials run across every planning step.",
		}),
		nodesExpanded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prost_nodes_expanded_total",
			Help: "Number of decision nodes initialized (ExpandNode calls).",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prost_determinization_cache_hits_total",
			Help: "Number of IDS/DFS cache lookups that hit.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prost_determinization_cache_misses_total",
			Help: "Number of IDS/DFS cache lookups that missed.",
		}),
		arenaOccupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prost_node_arena_occupancy",
			Help: "Number of node-arena slots currently allocated.",
		}),
		arenaCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prost_node_arena_capacity",
			Help: "Total node-arena capacity (-mnn).",
		}),
		searchDurationMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prost_search_duration_milliseconds",
			Help:    "Wall-clock duration of one EstimateQValues/Search call.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
	}

	for _, c := range []prometheus.Collector{
		m.trialsRun, m.nodesExpanded, m.cacheHits, m.cacheMisses,
		m.arenaOccupancy, m.arenaCapacity, m.searchDurationMs,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddTrials records n trials run (§4.8).
func (m *Metrics) AddTrials(n int) { m.trialsRun.Add(float64(n)) }

// AddNodesExpanded records n decision nodes initialized (§4.9).
func (m *Metrics) AddNodesExpanded(n int) { m.nodesExpanded.Add(float64(n)) }

// RecordCacheLookup records one determinization-cache lookup's outcome
// (§4.7's IDS cache).
func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// SetArenaUsage records the node arena's current occupancy and total
// capacity (§4.8's hard node cap).
func (m *Metrics) SetArenaUsage(occupied, capacity int) {
	m.arenaOccupancy.Set(float64(occupied))
	m.arenaCapacity.Set(float64(capacity))
}

// ObserveSearchDuration records how long one top-level search call
// took, in milliseconds.
func (m *Metrics) ObserveSearchDuration(ms float64) {
	m.searchDurationMs.Observe(ms)
}
