// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package metrics exposes Prometheus instrumentation for the API surface,
// ticket operations, and notification dispatch.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propkeep",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total API requests by method, path, and status code.",
	}, []string{"method", "path", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "propkeep",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "API request latency by method and path.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	apiActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "propkeep",
		Subsystem: "api",
		Name:      "active_requests",
		Help:      "Number of in-flight API requests.",
	})

	ticketOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propkeep",
		Subsystem: "tickets",
		Name:      "operations_total",
		Help:      "Ticket operations by kind and outcome.",
	}, []string{"operation", "outcome"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propkeep",
		Subsystem: "notify",
		Name:      "deliveries_total",
		Help:      "Notification delivery attempts by channel and outcome.",
	}, []string{"channel", "outcome"})
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, path, status).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		apiActiveRequests.Inc()
	} else {
		apiActiveRequests.Dec()
	}
}

// RecordTicketOperation records a ticket mutation outcome.
func RecordTicketOperation(operation string, success bool) {
	ticketOperationsTotal.WithLabelValues(operation, outcome(success)).Inc()
}

// RecordNotification records one channel delivery attempt.
func RecordNotification(channel string, success bool) {
	notificationsTotal.WithLabelValues(channel, outcome(success)).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
