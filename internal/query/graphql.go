package query

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/varbrowse/internal/logging"
	"github.com/rshade/varbrowse/internal/query/cache"
)

const (
	defaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of a failed response is kept in HTTPError.
	maxErrorBody = 4096

	requestIDHeader = "X-Request-Id"
)

// ErrEmptyEndpoint is returned by Do when the client has no endpoint.
var ErrEmptyEndpoint = errors.New("graphql endpoint is not configured")

// HTTPError is a non-2xx response from the endpoint.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("graphql request failed: %s", e.Status)
	}
	return fmt.Sprintf("graphql request failed: %s: %s", e.Status, e.Body)
}

// GraphQLError is one entry of a response's errors array.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLErrors is returned when the response carries an errors array. The
// request reached the server, so callers show these messages rather than a
// transport failure.
type GraphQLErrors struct {
	Errors []GraphQLError
}

func (e *GraphQLErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// ResponseCache stores raw response data by request key.
type ResponseCache interface {
	Get(key string) (*cache.Entry, error)
	Set(key string, data json.RawMessage) error
}

// GraphQLClient posts requests to a GraphQL endpoint.
type GraphQLClient struct {
	endpoint string
	http     *http.Client
	cache    ResponseCache
	logger   zerolog.Logger
}

// ClientOption configures a GraphQLClient.
type ClientOption func(*GraphQLClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *GraphQLClient) { c.http = hc }
}

// WithCache serves repeated requests from rc.
func WithCache(rc ResponseCache) ClientOption {
	return func(c *GraphQLClient) { c.cache = rc }
}

// WithLogger sets the logger used when the request context has none.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *GraphQLClient) { c.logger = logger }
}

// NewGraphQLClient returns a client for endpoint.
func NewGraphQLClient(endpoint string, opts ...ClientOption) *GraphQLClient {
	c := &GraphQLClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the endpoint URL.
func (c *GraphQLClient) Endpoint() string { return c.endpoint }

// Do executes req and decodes the response data into out.
func (c *GraphQLClient) Do(ctx context.Context, req Request, out any) error {
	if c.endpoint == "" {
		return ErrEmptyEndpoint
	}

	log := c.loggerFor(ctx)
	key := req.Key()

	if c.cache != nil {
		if entry, err := c.cache.Get(key); err == nil {
			log.Debug().Str("cache_key", key).Dur("age", time.Since(entry.CreatedAt)).Msg("graphql cache hit")
			return decodeData(entry.Data, out)
		}
	}

	requestID := logging.NewTraceID()
	log = log.With().Str("request_id", requestID).Logger()

	data, err := c.post(ctx, req, requestID)
	if err != nil {
		log.Debug().Err(err).Msg("graphql request failed")
		return err
	}
	log.Debug().Int("bytes", len(data)).Msg("graphql request completed")

	if c.cache != nil {
		if err := c.cache.Set(key, data); err != nil {
			log.Warn().Err(err).Msg("caching graphql response")
		}
	}
	return decodeData(data, out)
}

func (c *GraphQLClient) post(ctx context.Context, req Request, requestID string) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding graphql request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating graphql request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(requestIDHeader, requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending graphql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []GraphQLError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return nil, &GraphQLErrors{Errors: envelope.Errors}
	}
	return envelope.Data, nil
}

func (c *GraphQLClient) loggerFor(ctx context.Context) zerolog.Logger {
	if l := logging.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return c.logger
}

func decodeData(data json.RawMessage, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding graphql data: %w", err)
	}
	return nil
}
