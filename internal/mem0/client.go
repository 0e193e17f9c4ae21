package mem0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mem0mcp/internal/config"
	"mem0mcp/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const userAgent = "mem0mcp/1.0"

// maxErrorBodyBytes caps how much of an error response body is kept for the
// error message.
const maxErrorBodyBytes = 1024

// Client talks to the mem0 memory API through the resilient-request
// pipeline: every operation goes through the retry executor, writes above the
// chunk threshold are split and sent piece by piece, and the transport holder
// supplies the live HTTP client.
type Client struct {
	cfg      config.Mem0Config
	timeout  config.TimeoutConfig
	chunkCfg config.ChunkConfig
	holder   *TransportHolder
	executor *Executor
	logger   zerolog.Logger
	sleep    func(ctx context.Context, d time.Duration) error // injectable for tests
}

// NewClient creates a mem0 API client. The executor and holder are shared
// with the health monitor, which is wired separately.
func NewClient(cfg *config.Config, holder *TransportHolder, executor *Executor, logger zerolog.Logger) *Client {
	return &Client{
		cfg:      cfg.Mem0Config,
		timeout:  cfg.TimeoutConfig,
		chunkCfg: cfg.ChunkConfig,
		holder:   holder,
		executor: executor,
		logger:   logger.With().Str("component", "Mem0Client").Logger(),
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Add stores content as a new memory. Payloads above the chunk threshold are
// split along line boundaries and sent as ordered chunks with a fixed delay
// between successful sends; a failed chunk aborts the write without rolling
// back the chunks already sent.
func (c *Client) Add(ctx context.Context, content string) error {
	writeID := uuid.NewString()
	log := c.logger.With().Str("write_id", writeID).Logger()

	log.Info().
		Int("payload_bytes", len(content)).
		Msg("Adding memory")

	if len(content) <= c.chunkCfg.ChunkSize {
		return c.addChunk(ctx, content)
	}

	chunks := SplitPayload(content, c.chunkCfg.ChunkSize, c.chunkCfg.MaxChunkSize)
	metrics.ChunkedWritesTotal.Inc()
	log.Info().Int("chunks", len(chunks)).Msg("Payload exceeds chunk size, sending in chunks")

	for i, chunk := range chunks {
		if err := c.addChunk(ctx, chunk); err != nil {
			log.Error().Err(err).
				Int("chunk", i+1).
				Int("total_chunks", len(chunks)).
				Msg("Chunked write failed")
			return &ChunkWriteError{Sent: i, Total: len(chunks), Err: err}
		}
		metrics.ChunksSentTotal.Inc()
		log.Debug().Int("chunk", i+1).Int("total_chunks", len(chunks)).Msg("Chunk sent")

		if i < len(chunks)-1 {
			if err := c.sleep(ctx, c.chunkCfg.ChunkDelay()); err != nil {
				return &ChunkWriteError{Sent: i + 1, Total: len(chunks), Err: err}
			}
		}
	}
	return nil
}

func (c *Client) addChunk(ctx context.Context, content string) error {
	payload := map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": content},
		},
		"user_id":       c.cfg.UserID,
		"output_format": "v1.1",
	}
	c.addOrgParams(payload)

	return c.instrumented(ctx, "add", func() error {
		return c.doJSON(ctx, http.MethodPost, "/v1/memories/", c.timeout.Write(), payload, nil)
	})
}

// Search runs a semantic search over stored memories and returns the flat
// memory texts, most relevant first.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	payload := map[string]any{
		"query":         query,
		"user_id":       c.cfg.UserID,
		"output_format": "v1.1",
	}
	c.addOrgParams(payload)

	var raw json.RawMessage
	err := c.instrumented(ctx, "search", func() error {
		return c.doJSON(ctx, http.MethodPost, "/v1/memories/search/", c.timeout.Read(), payload, &raw)
	})
	if err != nil {
		return nil, err
	}
	return flattenMemories(raw), nil
}

// GetAll returns every memory stored for the configured user.
func (c *Client) GetAll(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("user_id", c.cfg.UserID)
	params.Set("page", "1")
	params.Set("page_size", strconv.Itoa(c.cfg.PageSize))
	if c.cfg.OrgID != "" {
		params.Set("org_id", c.cfg.OrgID)
	}
	if c.cfg.ProjectID != "" {
		params.Set("project_id", c.cfg.ProjectID)
	}

	var raw json.RawMessage
	err := c.instrumented(ctx, "get_all", func() error {
		return c.doJSON(ctx, http.MethodGet, "/v1/memories/?"+params.Encode(), c.timeout.Read(), nil, &raw)
	})
	if err != nil {
		return nil, err
	}
	return flattenMemories(raw), nil
}

// Ping performs one lightweight health probe. It is called by the health
// monitor with its own bounded context and bypasses the retry executor: a
// probe is a measurement, not a request worth retrying.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/v1/ping/", 0, nil, nil)
}

// ValidateAPIKey confirms the configured credentials against the ping
// endpoint and returns the account email when the service reports one.
func (c *Client) ValidateAPIKey(ctx context.Context) (string, error) {
	var result struct {
		UserEmail string `json:"user_email"`
	}
	err := c.instrumented(ctx, "validate_api_key", func() error {
		return c.doJSON(ctx, http.MethodGet, "/v1/ping/", c.timeout.Read(), nil, &result)
	})
	if err != nil {
		return "", err
	}
	return result.UserEmail, nil
}

// UpdateProject sets the project's custom memory-extraction instructions.
// It requires both org and project ids; without them the call is skipped.
func (c *Client) UpdateProject(ctx context.Context, customInstructions string) error {
	if c.cfg.OrgID == "" || c.cfg.ProjectID == "" {
		c.logger.Debug().Msg("No org/project configured, skipping project update")
		return nil
	}

	path := fmt.Sprintf("/api/v1/orgs/organizations/%s/projects/%s/", c.cfg.OrgID, c.cfg.ProjectID)
	payload := map[string]any{"custom_instructions": customInstructions}

	return c.instrumented(ctx, "update_project", func() error {
		return c.doJSON(ctx, http.MethodPatch, path, c.timeout.Write(), payload, nil)
	})
}

func (c *Client) addOrgParams(payload map[string]any) {
	if c.cfg.OrgID != "" {
		payload["org_id"] = c.cfg.OrgID
	}
	if c.cfg.ProjectID != "" {
		payload["project_id"] = c.cfg.ProjectID
	}
}

// instrumented runs fn through the retry executor and records the request
// metrics for the operation.
func (c *Client) instrumented(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	err := c.executor.Execute(ctx, operation, fn)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	metrics.RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	return err
}

// doJSON performs one HTTP attempt: marshal, send, classify, decode. A
// non-2xx status becomes a terminal HTTPError; network-level failures
// surface as retryable NetworkErrors. A non-zero timeout bounds the attempt
// on top of whatever deadline ctx already carries.
func (c *Client) doJSON(ctx context.Context, method, path string, timeout time.Duration, payload, out any) error {
	requestURL := strings.TrimRight(c.cfg.Host, "/") + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return WrapError(err, "failed to encode request payload")
		}
		body = bytes.NewReader(data)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return WrapError(err, "failed to create HTTP request")
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.holder.Client().Do(req)
	if err != nil {
		return NewNetworkError(requestURL, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return NewHTTPError(resp.StatusCode, string(errorBody), requestURL)
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		if err != nil {
			return NewNetworkError(requestURL, "failed to drain response body", err)
		}
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(requestURL, "failed to read response body", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return WrapError(err, "failed to decode response")
	}
	return nil
}

// flattenMemories extracts the memory texts from a mem0 response, which is
// either `{"results": [{"memory": ...}, ...]}` or a bare array of records.
func flattenMemories(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var wrapper struct {
		Results []struct {
			Memory string `json:"memory"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Results != nil {
		out := make([]string, 0, len(wrapper.Results))
		for _, r := range wrapper.Results {
			if r.Memory != "" {
				out = append(out, r.Memory)
			}
		}
		return out
	}

	var list []struct {
		Memory string `json:"memory"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, r := range list {
			if r.Memory != "" {
				out = append(out, r.Memory)
			}
		}
		return out
	}

	return []string{}
}
