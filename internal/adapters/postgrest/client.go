package postgrest

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

	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
)

// Config - параметры подключения к размещенному PostgREST API (Supabase).
type Config struct {
	BaseURL string // https://<project>.supabase.co
	APIKey  string
	Table   string
	// Timeout = 0 означает отсутствие таймаута.
	Timeout time.Duration
}

// Client реализует PropertyStorePort поверх REST API таблицы.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("postgrest: base URL is required")
	}
	if cfg.Table == "" {
		cfg.Table = "properties"
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("postgrest: invalid base URL: %w", err)
	}
	return &Client{
		endpoint:   base.JoinPath("rest", "v1", cfg.Table).String(),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// apiError - тело ошибки PostgREST.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// StatusError - ответ сервера с кодом не из 2xx.
type StatusError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("postgrest: status %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("postgrest: status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) doRequest(ctx context.Context, method string, query url.Values, body any, representation bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if representation {
		req.Header.Set("Prefer", "return=representation")
	}

	return c.httpClient.Do(req)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(resp.Body)
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Message, Code: apiErr.Code}
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}

func (c *Client) exec(ctx context.Context, method string, query url.Values, body any, representation bool) ([]domain.Property, error) {
	logger := contextkeys.ComponentLogger(ctx, "PostgrestClient", method)
	logger.Debug("Sending request to remote store", port.Fields{"url": c.endpoint, "query": query.Encode()})

	resp, err := c.doRequest(ctx, method, query, body, representation)
	if err != nil {
		logger.Error("Failed to perform request to remote store", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		logger.Error("Received error response from remote store", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}
	if !representation {
		return nil, nil
	}

	var rows []domain.Property
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		logger.Error("Failed to decode response from remote store", err, nil)
		return nil, fmt.Errorf("postgrest: failed to decode rows: %w", err)
	}
	logger.Debug("Remote store responded", port.Fields{"rows": len(rows)})
	return rows, nil
}

func idFilter(id int64) url.Values {
	return url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
}

func (c *Client) SelectAll(ctx context.Context) ([]domain.Property, error) {
	return c.exec(ctx, http.MethodGet, url.Values{"select": {"*"}, "order": {"id.asc"}}, nil, true)
}

func (c *Client) Insert(ctx context.Context, input domain.PropertyInput) ([]domain.Property, error) {
	// PostgREST принимает массив строк для вставки
	return c.exec(ctx, http.MethodPost, url.Values{"select": {"*"}}, []domain.PropertyInput{input}, true)
}

func (c *Client) Update(ctx context.Context, id int64, input domain.PropertyInput) ([]domain.Property, error) {
	query := idFilter(id)
	query.Set("select", "*")
	return c.exec(ctx, http.MethodPatch, query, input, true)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.exec(ctx, http.MethodDelete, idFilter(id), nil, false)
	return err
}
