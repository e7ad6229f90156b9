// Package telemetry records facade call metrics with OpenTelemetry and, when
// an OTLP endpoint is configured, exports them.
package telemetry

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/MikeMC777/pos-facade/internal/config"
)

const exportInterval = 10 * time.Second

// Duration buckets in milliseconds, up to the longest sensible timeout.
var buckets = []float64{2, 5, 10, 25, 50, 100, 200, 400, 800, 1000, 2000, 5000, 10000, 15000, 30000, 60000}

// ClientMetrics implements httpx.Recorder.
type ClientMetrics struct {
	RequestsTotal   metric.Int64Counter
	RequestErrors   metric.Int64Counter
	RequestDuration metric.Float64Histogram

	serviceName string
}

func NewClientMetrics(meter metric.Meter, serviceName string) (*ClientMetrics, error) {
	total, err := meter.Int64Counter(
		"pos.client.request.count",
		metric.WithDescription("Total number of backend requests"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}
	errs, err := meter.Int64Counter(
		"pos.client.request.error.count",
		metric.WithDescription("Backend requests that failed, by error kind"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create error counter: %w", err)
	}
	dur, err := meter.Float64Histogram(
		"pos.client.request.duration",
		metric.WithDescription("Backend request duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return &ClientMetrics{
		RequestsTotal:   total,
		RequestErrors:   errs,
		RequestDuration: dur,
		serviceName:     serviceName,
	}, nil
}

func (m *ClientMetrics) RecordRequest(ctx context.Context, method, route string, status int, errKind string, d time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", status),
		attribute.String("service.name", m.serviceName),
	}
	m.RequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.RequestDuration.Record(ctx, float64(d.Microseconds())/1000, metric.WithAttributes(attrs...))
	if errKind != "" {
		m.RequestErrors.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("error.type", errKind))...))
	}
}

// InitProvider builds the meter provider. Without an OTLP endpoint metrics
// are still recorded but never exported.
func InitProvider(ctx context.Context, cfg config.Config) (*sdkmetric.MeterProvider, error) {
	envRes, err := resource.New(ctx, resource.WithFromEnv())
	if err != nil {
		envRes = resource.Empty()
	}
	explicit, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		attribute.String("deployment.environment", cfg.AppEnv),
	))
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	res, err := resource.Merge(envRes, explicit)
	if err != nil {
		return nil, fmt.Errorf("merge resources: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.OTLPEndpoint != "" {
		exporterOpts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetrichttp.WithURLPath("/v1/metrics"),
		}
		if h := parseHeaders(cfg.OTLPHeaders); len(h) > 0 {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithHeaders(h))
		}
		if cfg.OTLPInsecure {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("create OTLP exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval)),
		))
		log.Printf("[metrics] exporting to %s/v1/metrics every %s", cfg.OTLPEndpoint, exportInterval)
	} else {
		log.Printf("[metrics] OTEL_EXPORTER_OTLP_ENDPOINT not set, metrics are not exported")
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// parseHeaders reads "key1=value1,key2=value2".
func parseHeaders(s string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && strings.TrimSpace(k) != "" {
			headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return headers
}
