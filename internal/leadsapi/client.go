// Package leadsapi is the HTTP client for the remote Leads API and the
// Auth Gateway in front of it. Every call carries the session cookie.
package leadsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultCookieName = "accessToken"
	DefaultSignInPath = "/api/v1/user/login"

	maxBodyBytes = 4 << 20
)

type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	CookieName        string
	SignInPath        string
	Logger            *slog.Logger
}

type Client struct {
	base       *url.URL
	hc         *http.Client
	lim        *HostLimiter
	log        *slog.Logger
	cookieName string
	signInPath string

	mu  sync.Mutex
	jar *cookiejar.Jar
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("leadsapi: invalid base url %q", opts.BaseURL)
	}

	jar, err := newJar()
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		base:       base,
		lim:        NewHostLimiter(opts.RequestsPerSecond, opts.Burst),
		log:        logger,
		cookieName: firstNonEmpty(opts.CookieName, DefaultCookieName),
		signInPath: firstNonEmpty(opts.SignInPath, DefaultSignInPath),
		jar:        jar,
	}
	c.hc = &http.Client{Timeout: timeout, Jar: jarFunc{c}}
	return c, nil
}

func newJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// jarFunc lets ClearSession swap the jar without rebuilding the http.Client.
type jarFunc struct{ c *Client }

func (j jarFunc) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.c.currentJar().SetCookies(u, cookies)
}

func (j jarFunc) Cookies(u *url.URL) []*http.Cookie {
	return j.c.currentJar().Cookies(u)
}

func (c *Client) currentJar() *cookiejar.Jar {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jar
}

func (c *Client) CookieName() string { return c.cookieName }

// SessionToken returns the session cookie value currently held for the API.
func (c *Client) SessionToken() string {
	for _, ck := range c.currentJar().Cookies(c.base) {
		if ck.Name == c.cookieName {
			return ck.Value
		}
	}
	return ""
}

// SetSessionToken seeds the jar with a previously stored session cookie.
func (c *Client) SetSessionToken(token string) {
	if token == "" {
		return
	}
	c.currentJar().SetCookies(c.base, []*http.Cookie{{
		Name:  c.cookieName,
		Value: token,
		Path:  "/",
	}})
}

func (c *Client) ClearSession() {
	jar, err := newJar()
	if err != nil {
		return
	}
	c.mu.Lock()
	c.jar = jar
	c.mu.Unlock()
}

func (c *Client) endpoint(path string, q url.Values) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return &u
}

// do sends one request and returns the body of a response whose status is
// accepted by ok; anything else becomes an *Error.
func (c *Client) do(ctx context.Context, op, method string, u *url.URL, in any, ok func(int) bool) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("leadsapi %s: encode: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	if err := c.lim.Wait(ctx, u); err != nil {
		return nil, fmt.Errorf("leadsapi %s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("leadsapi %s: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("leads_api_unreachable", slog.String("op", op), slog.String("request_id", reqID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("leadsapi %s: %w", op, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("leadsapi %s: read body: %w", op, err)
	}

	c.log.Debug("leads_api",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", u.Path),
		slog.Int("status", res.StatusCode),
		slog.String("request_id", reqID),
		slog.Int64("dur_ms", time.Since(start).Milliseconds()),
	)

	if !ok(res.StatusCode) {
		return nil, &Error{
			Op:          op,
			StatusCode:  res.StatusCode,
			ContentType: res.Header.Get("Content-Type"),
			Body:        b,
		}
	}
	return b, nil
}

func decode(op string, b []byte, out any) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("leadsapi %s: decode: %w", op, err)
	}
	return nil
}

func is2xx(code int) bool { return code >= 200 && code <= 299 }

func exactly(want int) func(int) bool {
	return func(code int) bool { return code == want }
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
