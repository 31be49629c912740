package hackquest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/config"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 8 << 20

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
}

var walletTypes = []string{"io.metamask", "io.rabby", "app.phantom", "me.rainbow"}

// APIError is an error entry returned in a GraphQL response body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "graphql: " + e.Message
}

// ClientConfig configures one account's connection to the platform.
type ClientConfig struct {
	Endpoint string
	PageURL  string
	Proxy    *url.URL
	Timeout  time.Duration
	// Limiter paces requests across every client sharing it.
	Limiter *rate.Limiter
	Log     *slog.Logger
}

// Client talks to the HackQuest GraphQL API for a single account. It keeps
// no authentication state; every call reads the session it is given.
type Client struct {
	http      *http.Client
	endpoint  string
	pageURL   string
	limiter   *rate.Limiter
	userAgent string
	log       *slog.Logger
}

var _ platform.Actions = &Client{}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.GraphQLEndpoint
	}
	if cfg.PageURL == "" {
		cfg.PageURL = config.QuestPageURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultRequestTimeout
	}
	if cfg.Limiter == nil {
		cfg.Limiter = rate.NewLimiter(rate.Limit(config.DefaultRequestsPerSecond), 1)
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	transport, err := newTransport(cfg.Proxy)
	if err != nil {
		return nil, err
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		endpoint:  cfg.Endpoint,
		pageURL:   cfg.PageURL,
		limiter:   cfg.Limiter,
		userAgent: userAgents[rand.IntN(len(userAgents))],
		log:       cfg.Log.With(slog.String("type", "api")),
	}, nil
}

type graphqlRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

// query posts a GraphQL document and returns the body's data object.
// Transport failures, non-200 statuses and GraphQL errors are retryable;
// a missing access token on an authenticated call is fatal.
func (c *Client) query(ctx context.Context, s *platform.Session, op, document string, vars map[string]any, auth bool) (gjson.Result, error) {
	if auth && !s.Authenticated() {
		return gjson.Result{}, platform.Fatal(op, platform.ErrUnauthenticated)
	}
	if vars == nil {
		vars = map[string]any{}
	}

	body, err := json.Marshal(graphqlRequest{OperationName: op, Query: document, Variables: vars})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create %s request: %w", op, err)
	}
	c.setAPIHeaders(req)
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	}

	raw, err := c.do(ctx, op, req)
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, platform.Retryable(op, fmt.Errorf("%w: invalid json", platform.ErrNoData))
	}
	res := gjson.ParseBytes(raw)
	if msg := res.Get("errors.0.message"); msg.Exists() {
		return res.Get("data"), platform.Retryable(op, &APIError{Message: msg.String()})
	}
	data := res.Get("data")
	if !data.Exists() || data.Type == gjson.Null {
		return gjson.Result{}, platform.Retryable(op, platform.ErrNoData)
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, op string, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, platform.Retryable(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, platform.Retryable(op, fmt.Errorf("read response body: %w", err))
	}

	c.log.Debug("Request completed",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, platform.Fatal(op, platform.ErrUnauthenticated)
	case resp.StatusCode != http.StatusOK:
		return nil, platform.Retryable(op, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(raw, 256)))
	}
	return raw, nil
}

func (c *Client) setAPIHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/graphql-response+json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", config.WebOrigin)
	req.Header.Set("Referer", config.WebOrigin+"/")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-site")
	req.Header.Set("User-Agent", c.userAgent)
}

// apiMessage returns the GraphQL error message carried by err, if any.
func apiMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "...(truncated)"
	}
	return s
}
