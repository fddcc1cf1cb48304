package catalogsync

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricNameSyncSuccess = "catalog_sync_apply_success_total"
	metricNameSyncFailure = "catalog_sync_apply_failure_total"
	metricNameSyncLag     = "catalog_sync_event_lag_ms"
)

type syncMetrics struct {
	success metric.Int64Counter
	failure metric.Int64Counter
	lag     metric.Float64Histogram
	helper  *log.Helper
	enabled bool
}

func newSyncMetrics(meter metric.Meter, helper *log.Helper) *syncMetrics {
	m := &syncMetrics{helper: helper}
	if meter == nil {
		return m
	}

	var err error
	if m.success, err = meter.Int64Counter(metricNameSyncSuccess,
		metric.WithDescription("Number of catalog events applied successfully")); err != nil {
		helper.Warnf("catalogsync metrics: register success counter: %v", err)
		return m
	}
	if m.failure, err = meter.Int64Counter(metricNameSyncFailure,
		metric.WithDescription("Number of catalog events failed to apply")); err != nil {
		helper.Warnf("catalogsync metrics: register failure counter: %v", err)
	}
	if m.lag, err = meter.Float64Histogram(metricNameSyncLag,
		metric.WithDescription("Event lag between updated_at and processing time"), metric.WithUnit("ms")); err != nil {
		helper.Warnf("catalogsync metrics: register lag histogram: %v", err)
	}
	m.enabled = true
	return m
}

func (m *syncMetrics) recordSuccess(ctx context.Context, eventType string, occurredAt time.Time, now time.Time) {
	if m == nil || !m.enabled {
		return
	}
	attrs := metric.WithAttributes(attribute.String("event_type", eventType))
	if m.success != nil {
		m.success.Add(ctx, 1, attrs)
	}
	if m.lag != nil {
		lag := now.Sub(occurredAt).Milliseconds()
		if lag < 0 {
			lag = 0
		}
		m.lag.Record(ctx, float64(lag), attrs)
	}
}

func (m *syncMetrics) recordFailure(ctx context.Context, eventType string, err error) {
	if m == nil || !m.enabled {
		return
	}
	attrs := metric.WithAttributes(attribute.String("event_type", eventType))
	if m.failure != nil {
		m.failure.Add(ctx, 1, attrs)
	}
	if m.helper != nil {
		m.helper.WithContext(ctx).Warnw("msg", "catalog event apply failed", "event_type", eventType, "error", err)
	}
}
