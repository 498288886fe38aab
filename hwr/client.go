package hwr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juruen/digitrec/log"
)

const (
	healthPath  = "/health"
	predictPath = "/predict"

	// largest response body that is read before giving up
	maxBody = 1 << 20
)

// HTTPClient abstracts the transport for testability; *http.Client
// satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the digit recognition service at BaseURL.
type Client struct {
	BaseURL string
	HTTP    HTTPClient
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Health probes GET /health. Any non 2xx status or undecodable body is a
// transport error.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+healthPath, nil)
	if err != nil {
		return nil, transportError("create health request", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, transportError("health", fmt.Errorf("status %d, response: %s", status, preview(body)))
	}

	var h HealthResponse
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, transportError("decode health", err)
	}
	log.Trace.Printf("health: status=%q model_loaded=%v", h.Status, h.ModelLoaded)
	return &h, nil
}

// Predict posts a PNG data URL to POST /predict. A response the service
// marks as unsuccessful, or one missing fields, yields a
// *PredictionFailedError; network and non JSON responses a *TransportError.
func (c *Client) Predict(ctx context.Context, image string, requestID string) (*Prediction, error) {
	data, err := json.Marshal(PredictRequest{Image: image})
	if err != nil {
		return nil, transportError("encode predict request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+predictPath, bytes.NewReader(data))
	if err != nil {
		return nil, transportError("create predict request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	log.Trace.Printf("predict: sending %d bytes, request %s", len(data), requestID)

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var res PredictResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, transportError("decode predict response",
			fmt.Errorf("status %d: %v, response: %s", status, err, preview(body)))
	}

	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = fmt.Sprintf("service answered status %d without an error message", status)
		}
		return nil, &PredictionFailedError{Message: msg}
	}

	return parsePrediction(&res)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, transportError(req.Method+" "+req.URL.Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return 0, nil, transportError("read response", err)
	}
	return res.StatusCode, body, nil
}

func preview(body []byte) string {
	const n = 200
	if len(body) > n {
		return fmt.Sprintf("%q...", body[:n])
	}
	return fmt.Sprintf("%q", body)
}
