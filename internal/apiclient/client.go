package apiclient

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// TokenSource returns the bearer token to attach, or "" when there is none.
// It is consulted on every request.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is the typed gateway to the clinic backend. Its methods never
// return Go errors; every outcome is folded into a Result.
type Client struct {
	http   *resty.Client
	tokens TokenSource
	log    zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

// New creates a gateway client. A zero timeout disables the client-side
// deadline.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	c := &Client{
		tokens: tokens,
		log:    log.With().Str("component", "apiclient").Logger(),
	}
	hc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{c.log})
	if timeout > 0 {
		hc.SetTimeout(timeout)
	}
	hc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if token := c.tokens.Token(r.Context()); token != "" {
			r.SetAuthToken(token)
		}
		return nil
	})
	c.http = hc
	return c
}

// OnUnauthorized registers the callback run whenever the backend answers
// 401. It replaces any earlier callback.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

// send issues one request and normalizes the outcome. fallback is the
// message used when the backend gives none.
func send[T any](ctx context.Context, c *Client, method, path, fallback string, build func(r *resty.Request)) Result[T] {
	var env Result[T]
	req := c.http.R().SetContext(ctx).SetResult(&env).SetError(&env)
	if build != nil {
		build(req)
	}

	resp, err := req.Execute(method, path)
	if resp != nil && resp.StatusCode() == http.StatusUnauthorized {
		c.log.Warn().Str("method", method).Str("path", path).Msg("backend rejected credentials")
		c.unauthorized(ctx)
		msg := env.Error
		if msg == "" {
			msg = "Session expired, please log in again"
		}
		return failure[T](http.StatusUnauthorized, msg)
	}
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		return failure[T](status, err.Error())
	}

	env.Status = resp.StatusCode()
	if resp.IsError() {
		env.Success = false
	}
	if !env.Success && env.Error == "" {
		env.Error = fallback
	}
	return env
}

type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
