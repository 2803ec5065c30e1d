// Package tracing wires OpenTelemetry around the fetch and store boundaries.
// The core weather package never imports it; decoration happens in main.
package tracing

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/i474232898/weather-forecast-recorder/internal/weather"
)

const instrumentationName = "github.com/i474232898/weather-forecast-recorder"

// Span names for the three traced stages of an invocation.
const (
	SpanHandleRequest = "handle_request"
	SpanFetchWeather  = "fetch_weather_data"
	SpanStoreWeather  = "store_weather_data"
)

// NewProvider builds a tracer provider. With an empty endpoint spans are
// created but not exported.
func NewProvider(ctx context.Context, serviceName, endpoint string) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	}

	if endpoint != "" {
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

// Tracer returns the package tracer from tp, or a no-op tracer when tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return tp.Tracer(instrumentationName)
}

// NewHTTPClient returns a client whose transport emits a client span per request.
// It has no Timeout; the request context bounds each call.
func NewHTTPClient(tp trace.TracerProvider) *http.Client {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport, otelhttp.WithTracerProvider(tp)),
	}
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.kind", weather.KindOf(err).String()))
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type tracedFetcher struct {
	next   weather.Fetcher
	tracer trace.Tracer
}

// WrapFetcher wraps next so each fetch runs inside a fetch_weather_data span.
func WrapFetcher(next weather.Fetcher, tp trace.TracerProvider) weather.Fetcher {
	return &tracedFetcher{next: next, tracer: Tracer(tp)}
}

func (f *tracedFetcher) FetchForecast(ctx context.Context) (forecast *weather.ForecastResponse, err error) {
	ctx, span := f.tracer.Start(ctx, SpanFetchWeather)
	defer func() { End(span, err) }()

	return f.next.FetchForecast(ctx)
}

type tracedWriter struct {
	next   weather.Writer
	tracer trace.Tracer
}

// WrapWriter wraps next so each store runs inside a store_weather_data span.
func WrapWriter(next weather.Writer, tp trace.TracerProvider) weather.Writer {
	return &tracedWriter{next: next, tracer: Tracer(tp)}
}

func (w *tracedWriter) Store(ctx context.Context, forecast *weather.ForecastResponse) (rec weather.StoredRecord, err error) {
	ctx, span := w.tracer.Start(ctx, SpanStoreWeather)
	defer func() {
		if err == nil {
			span.SetAttributes(attribute.String("record.id", rec.ID))
		}
		End(span, err)
	}()

	return w.next.Store(ctx, forecast)
}
