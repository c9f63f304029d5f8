package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

var ErrInvalidResponse = errors.New("invalid classifier response")

// HTTPConfig configures an HTTPClassifier.
type HTTPConfig struct {
	Endpoint      string
	Timeout       time.Duration
	MinConfidence float64
}

// HTTPClassifier sends frames to a remote image classification endpoint.
type HTTPClassifier struct {
	endpoint      string
	minConfidence float64
	httpClient    *http.Client
}

type classifyRequest struct {
	ImageBase64 string `json:"image_base64"`
	MIMEType    string `json:"mime_type,omitempty"`
}

type classifyResponse struct {
	Predictions []model.Prediction `json:"predictions"`
}

// NewHTTPClassifier validates cfg and returns a classifier.
func NewHTTPClassifier(cfg HTTPConfig) (*HTTPClassifier, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("classifier endpoint is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClassifier{
		endpoint:      endpoint,
		minConfidence: cfg.MinConfidence,
		httpClient:    &http.Client{Timeout: timeout},
	}, nil
}

// Ping checks that the endpoint answers; it is used as the model load step.
func (c *HTTPClassifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("classifier unreachable: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("classifier unavailable: status %d", resp.StatusCode)
	}
	return nil
}

// Loader returns a Loader that pings the endpoint before handing out c.
func (c *HTTPClassifier) Loader() Loader {
	return func(ctx context.Context) (Classifier, error) {
		if err := c.Ping(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Classify implements Classifier.
func (c *HTTPClassifier) Classify(ctx context.Context, frame model.Frame) ([]model.Prediction, error) {
	payload, err := json.Marshal(classifyRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(frame.Data),
		MIMEType:    frame.MIMEType,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classify status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var out classifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return sortPredictions(out.Predictions, c.minConfidence), nil
}
