package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	errNoHTTPClient = errors.New("http client not configured")
	errUnexpected   = errors.New("unexpected status code")
)

// doRequest performs exactly one request and returns the fully read body.
// Non-2xx responses are errors; the body is read either way so the
// connection can be reused.
func doRequest(
	ctx context.Context,
	client *http.Client,
	buildRequest func(ctx context.Context) (*http.Request, error),
) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}
	return body, nil
}
