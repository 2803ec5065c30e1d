package httpapi

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast-recorder/internal/handler"
)

// Invoker is satisfied by *handler.Handler.
type Invoker interface {
	Handle(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error)
}

// RegisterRoutes wires the local invoke surface into the Fiber app.
// POST /invoke runs one invocation and relays its response unchanged.
func RegisterRoutes(app *fiber.App, invoker Invoker) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-forecast-recorder",
		})
	})

	app.Post("/invoke", func(c *fiber.Ctx) error {
		// Fiber reuses the body buffer after the handler returns.
		event := json.RawMessage(append([]byte(nil), c.Body()...))

		resp, err := invoker.Handle(c.UserContext(), event)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "invocation failed")
		}

		for k, v := range resp.Headers {
			c.Set(k, v)
		}
		return c.Status(resp.StatusCode).SendString(resp.Body)
	})
}

// ErrorHandler keeps server failures generic and reports routing errors as-is.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	message := handler.FailureMessage
	if code < fiber.StatusInternalServerError {
		message = err.Error()
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
