package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInvoker struct {
	resp  events.APIGatewayProxyResponse
	err   error
	event json.RawMessage
}

func (s *stubInvoker) Handle(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	s.event = event
	return s.resp, s.err
}

func TestInvokeRelaysResponse(t *testing.T) {
	inv := &stubInvoker{resp: events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"message":"Weather data stored successfully","item":{"id":"x"}}`,
	}}
	app := fiber.New()
	RegisterRoutes(app, inv)

	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{"source":"local"}`))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, inv.resp.Body, string(body))
	assert.JSONEq(t, `{"source":"local"}`, string(inv.event))
}

func TestInvokeRelaysFailureStatus(t *testing.T) {
	inv := &stubInvoker{resp: events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error":"An error occurred"}`,
	}}
	app := fiber.New()
	RegisterRoutes(app, inv)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/invoke", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestInvokeHandlerError(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, &stubInvoker{err: errors.New("runtime")})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/invoke", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, &stubInvoker{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/invoke", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, &stubInvoker{err: errors.New("runtime exploded")})

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, `{"error":"Cannot GET /nope"}`},
		{"wrong method", http.MethodGet, "/invoke", http.StatusMethodNotAllowed, `{"error":"Method Not Allowed"}`},
		{"invocation error", http.MethodPost, "/invoke", http.StatusInternalServerError, `{"error":"An error occurred"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}
