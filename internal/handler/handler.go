package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.opentelemetry.io/otel/trace"

	"github.com/i474232898/weather-forecast-recorder/internal/tracing"
	"github.com/i474232898/weather-forecast-recorder/internal/weather"
)

const (
	SuccessMessage = "Weather data stored successfully"
	FailureMessage = "An error occurred"
)

// Recorder runs one fetch-and-store cycle.
type Recorder interface {
	FetchAndStore(ctx context.Context) (weather.StoredRecord, error)
}

type successBody struct {
	Message string               `json:"message"`
	Item    weather.StoredRecord `json:"item"`
}

type failureBody struct {
	Error string `json:"error"`
}

// Handler is the function entry point.
type Handler struct {
	recorder Recorder
	log      *slog.Logger
	tracer   trace.Tracer
}

// Option customizes a Handler.
type Option func(*Handler)

// WithTracerProvider opens a handle_request span around every invocation.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Handler) {
		h.tracer = tracing.Tracer(tp)
	}
}

// New creates a Handler. A nil logger discards output.
func New(recorder Recorder, log *slog.Logger, opts ...Option) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		recorder: recorder,
		log:      log,
		tracer:   tracing.Tracer(nil),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle ignores the event payload. Failures are reported through the
// response status and the returned error is always nil.
func (h *Handler) Handle(ctx context.Context, _ json.RawMessage) (events.APIGatewayProxyResponse, error) {
	ctx, span := h.tracer.Start(ctx, tracing.SpanHandleRequest)

	rec, err := h.recorder.FetchAndStore(ctx)
	tracing.End(span, err)
	if err != nil {
		h.log.ErrorContext(ctx, "invocation failed",
			"kind", weather.KindOf(err).String(),
			"op", weather.OpOf(err),
			"error", err,
		)
		return failure(), nil
	}

	body, err := json.Marshal(successBody{Message: SuccessMessage, Item: rec})
	if err != nil {
		h.log.ErrorContext(ctx, "encode response failed", "error", err)
		return failure(), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func failure() events.APIGatewayProxyResponse {
	body, _ := json.Marshal(failureBody{Error: FailureMessage})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
