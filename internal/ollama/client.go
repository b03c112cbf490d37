// Package ollama provides the gateway to a locally hosted Ollama runtime.
// It is the single point of contact with the model runtime: availability
// tracking, generation calls, implicit model pulls, and retry with backoff.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/logger"
)

// DefaultTimeout is the per-attempt generation timeout. Local inference is
// slow, so this is deliberately generous.
const DefaultTimeout = 3 * time.Minute

// Options holds per-call generation parameters
type Options struct {
	Temperature float64
	NumPredict  int
	JSONFormat  bool
}

// Client talks to the Ollama HTTP API. The cached model catalog is
// replaced wholesale after each successful tags query or pull, so
// concurrent readers never observe a partially updated list.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger

	catalog *catalog // swapped atomically under mu
}

// New creates a gateway client for the runtime at baseURL.
// A zero timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		catalog:    newCatalog(),
	}
}

// --- wire types (Ollama HTTP contract) ---

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	TotalDuration int64  `json:"total_duration,omitempty"`
}

type pullRequest struct {
	Name string `json:"name"`
}

// CheckAvailability queries the runtime model catalog and refreshes the
// cached list. It never returns an error: any failure degrades to a
// disconnected state and is only logged.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		c.catalog.disconnect()
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("ollama availability check failed", zap.String("url", c.baseURL), zap.Error(err))
		c.catalog.disconnect()
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("ollama availability check returned non-200", zap.Int("status", resp.StatusCode))
		c.catalog.disconnect()
		return false
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		c.catalog.disconnect()
		return false
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	c.catalog.replace(names)

	c.log.Debug("ollama catalog refreshed", zap.Int("models", len(names)))
	return true
}

// Connected reports the last known connection state
func (c *Client) Connected() bool {
	return c.catalog.connected()
}

// Models returns a copy of the cached model catalog
func (c *Client) Models() []string {
	return c.catalog.models()
}

// HasModel reports whether the named model is in the cached catalog.
// Ollama tags carry an explicit revision suffix ("llama3:latest"), so a
// bare name matches any revision of that model.
func (c *Client) HasModel(name string) bool {
	for _, m := range c.catalog.models() {
		if m == name || strings.SplitN(m, ":", 2)[0] == name {
			return true
		}
	}
	return false
}

// Pull asks the runtime to fetch the named model. This can move a lot of
// data and blocks until the runtime finishes; the caller's timeout applies.
func (c *Client) Pull(ctx context.Context, name string) error {
	body, err := json.Marshal(pullRequest{Name: name})
	if err != nil {
		return fmt.Errorf("failed to marshal pull request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create pull request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(name, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &ModelUnavailableError{Model: name, Cause: fmt.Errorf("pull returned status %d", resp.StatusCode)}
	}

	c.log.Info("model pulled",
		zap.String("model", name),
		zap.Duration("latency", time.Since(start)))

	// The catalog must reflect the new model before the caller retries.
	c.CheckAvailability(ctx)
	return nil
}

// Generate issues one generation call. If the client believes the runtime
// is down it first re-checks availability; if the requested model is not
// in the catalog it attempts an implicit pull before failing.
func (c *Client) Generate(ctx context.Context, model, prompt string, opts Options) (string, error) {
	if !c.Connected() && !c.CheckAvailability(ctx) {
		return "", &ServiceUnavailableError{URL: c.baseURL}
	}

	if !c.HasModel(model) {
		if err := c.Pull(ctx, model); err != nil {
			var modelErr *ModelUnavailableError
			if errors.As(err, &modelErr) {
				return "", err
			}
			return "", &ModelUnavailableError{Model: model, Cause: err}
		}
	}

	reqBody := generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	}
	if opts.JSONFormat {
		reqBody.Format = "json"
	}
	options := map[string]any{}
	if opts.Temperature > 0 {
		options["temperature"] = opts.Temperature
	}
	if opts.NumPredict > 0 {
		options["num_predict"] = opts.NumPredict
	}
	if len(options) > 0 {
		reqBody.Options = options
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.transportError(model, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &GenerationError{
			Model:      model,
			StatusCode: resp.StatusCode,
			Message:    logger.Truncate(string(msg), 200),
		}
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", &GenerationError{Model: model, Message: "undecodable response body", Cause: err}
	}

	c.log.Info("generation complete",
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("response_len", len(genResp.Response)),
		zap.Duration("latency", time.Since(start)))

	return genResp.Response, nil
}

// transportError classifies a failed round trip into the gateway error
// taxonomy. Timeouts surface distinctly; everything else means the
// runtime is unreachable.
func (c *Client) transportError(model string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Model: model, Elapsed: c.httpClient.Timeout}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &TimeoutError{Model: model, Elapsed: c.httpClient.Timeout}
	}
	c.catalog.disconnect()
	return &ServiceUnavailableError{URL: c.baseURL, Cause: err}
}
