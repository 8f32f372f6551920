// Package chat drives one conversational turn against the Auphere agent
// backend: it issues the request, consumes the streamed response and yields
// partial and final results in wire order.
package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/auphere/agent-core/core/credentials"
	"github.com/auphere/agent-core/core/sessions"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultMode = "explore"
	streamPath  = "/api/v1/chat/stream"

	emptyPromptText = "¿Qué te gustaría planear hoy?"
)

// Client talks to one agent backend. It is safe to share across runs; each
// run keeps its own state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mode       string

	sessions    *sessions.Resolver
	credentials credentials.Provider
	invalidate  func(context.Context) error
	normalize   Normalizer
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default instrumented client, e.g. to set a
// timeout policy. Timeouts are deliberately not enforced here.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMode sets the default agent mode for runs, overridable per run.
func WithMode(mode string) ClientOption {
	return func(c *Client) {
		c.mode = mode
	}
}

// WithSessionResolver ties the client to a conversation's session resolver.
// Without one, sessions live only as long as the process.
func WithSessionResolver(resolver *sessions.Resolver) ClientOption {
	return func(c *Client) {
		c.sessions = resolver
	}
}

// WithCredentials attaches a bearer token provider; absent one, requests go
// out unauthenticated.
func WithCredentials(provider credentials.Provider) ClientOption {
	return func(c *Client) {
		c.credentials = provider
	}
}

// WithCacheInvalidation registers the callback fired at most once per run
// after a terminal outcome, typically to refresh a cached conversation list.
func WithCacheInvalidation(invalidate func(context.Context) error) ClientOption {
	return func(c *Client) {
		c.invalidate = invalidate
	}
}

// WithStatusNormalizer replaces the normalizer applied to ephemeral text.
func WithStatusNormalizer(normalize Normalizer) ClientOption {
	return func(c *Client) {
		c.normalize = normalize
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		mode:      defaultMode,
		normalize: NormalizeStatusText,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.sessions == nil {
		c.sessions = sessions.NewResolver(sessions.NewMemoryStore())
	}

	return c
}
