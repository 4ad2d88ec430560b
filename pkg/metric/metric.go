// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metric exposes prometheus counters and histograms for the
// protection engine's operations, via luxfi/metric the way the
// teacher wires ad-exchange metrics.
package metric

import (
	metrics "github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and histograms exported on the storage
// service's /metrics endpoint. The storage service increments
// ProtectTotal, ShareTotal and BuyerSignTotal; the group service takes
// no Metrics.
type Metrics struct {
	metricsInstance metrics.Metrics

	ProtectTotal    metrics.CounterVec
	CheckTotal      metrics.CounterVec
	UnprotectTotal  metrics.CounterVec
	ShareTotal      metrics.CounterVec
	BuyerSignTotal  metrics.Counter

	WrapDuration     metrics.Histogram
	ProtectDuration  metrics.Histogram
	UnprotectLatency metrics.Histogram
}

// NewMetrics creates a new metrics instance using luxfi/metric.
func NewMetrics() (*Metrics, error) {
	factory := metrics.NewPrometheusFactory()
	metricsInstance := factory.New("dvpguard")

	m := &Metrics{metricsInstance: metricsInstance}

	m.ProtectTotal = metricsInstance.NewCounterVec(
		"protect_total",
		"Total number of protect calls by outcome",
		[]string{"outcome"},
	)
	m.CheckTotal = metricsInstance.NewCounterVec(
		"check_total",
		"Total number of check calls by validity",
		[]string{"valid"},
	)
	m.UnprotectTotal = metricsInstance.NewCounterVec(
		"unprotect_total",
		"Total number of unprotect calls by outcome",
		[]string{"outcome"},
	)
	m.ShareTotal = metricsInstance.NewCounterVec(
		"share_total",
		"Total number of share-record issuances by kind",
		[]string{"kind"},
	)
	m.BuyerSignTotal = metricsInstance.NewCounter(
		"buyer_sign_total",
		"Total number of accepted buyer countersignatures",
	)

	m.WrapDuration = metricsInstance.NewHistogram(
		"wrap_duration_seconds",
		"Time to build or open a wrapped-key envelope",
		prometheus.DefBuckets,
	)
	m.ProtectDuration = metricsInstance.NewHistogram(
		"protect_duration_seconds",
		"Time to assemble a protected document",
		prometheus.DefBuckets,
	)
	m.UnprotectLatency = metricsInstance.NewHistogram(
		"unprotect_duration_seconds",
		"Time to recover plaintext from a protected document",
		prometheus.DefBuckets,
	)

	return m, nil
}

// GetGatherer returns the prometheus gatherer for metrics export.
func (m *Metrics) GetGatherer() prometheus.Gatherer {
	if registry := m.metricsInstance.Registry(); registry != nil {
		return registry
	}
	return prometheus.DefaultGatherer
}

// GetRegisterer returns the prometheus registerer.
func (m *Metrics) GetRegisterer() prometheus.Registerer {
	if registry := m.metricsInstance.Registry(); registry != nil {
		return registry
	}
	return prometheus.DefaultRegisterer
}
