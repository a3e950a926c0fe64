// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analysis

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for analysis passes.
var meter = otel.Meter("debugbuddy.analysis")

// Metrics for scanner operations.
var (
	scanLatency  metric.Float64Histogram
	scanTotal    metric.Int64Counter
	scanFindings metric.Int64Histogram
	scanFaults   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		scanLatency, err = meter.Float64Histogram(
			"scanner_scan_duration_seconds",
			metric.WithDescription("Duration of heuristic scan operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		scanTotal, err = meter.Int64Counter(
			"scanner_scan_total",
			metric.WithDescription("Total number of scan operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		scanFindings, err = meter.Int64Histogram(
			"scanner_findings_emitted",
			metric.WithDescription("Number of findings emitted per scan"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		scanFaults, err = meter.Int64Counter(
			"scanner_scan_faults_total",
			metric.WithDescription("Total number of scans that could not complete"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// recordScanMetrics records one scan's telemetry. Metric failures are
// swallowed: observability must never affect scan results.
func recordScanMetrics(ctx context.Context, duration time.Duration, findings int, faulted bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("faulted", faulted))
	scanLatency.Record(ctx, duration.Seconds(), attrs)
	scanTotal.Add(ctx, 1, attrs)
	scanFindings.Record(ctx, int64(findings), attrs)
	if faulted {
		scanFaults.Add(ctx, 1)
	}
}
