package connection

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var Version = "undefined"

//go:generate mockgen -destination=../mocks/doer.go -package=mocks github.com/ibm/sfrest/connection Doer

// Doer issues requests against the Site Factory API. The path is relative to the
// API base URL and already carries its query string.
//
// Responses must be JSON objects. Any other valid JSON, such as an array, fails with an
// *InvalidResponseError whose Decode method gives access to the payload.
type Doer interface {
	Get(ctx context.Context, path string) (Response, error)
	Delete(ctx context.Context, path string) (Response, error)
	Post(ctx context.Context, path string, body []byte) (Response, error)
	Put(ctx context.Context, path string, body []byte) (Response, error)
}

type Config struct {
	URL       string
	User      string
	APIKey    string
	Timeout   time.Duration
	UserAgent string
}

// Connection is the shared transport of the Site Factory clients. It is safe for
// concurrent use.
type Connection struct {
	baseURL   *url.URL
	user      string
	apiKey    string
	userAgent string
	client    *http.Client
	log       *zap.SugaredLogger
}

// New creates a Connection. A nil httpClient is replaced by one using cfg.Timeout.
func New(cfg Config, httpClient *http.Client, logr *zap.SugaredLogger) (*Connection, error) {
	baseURL, err := url.Parse(strings.TrimSuffix(cfg.URL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "Invalid Site Factory URL")
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, errors.Errorf("Site Factory URL %q must contain a scheme and a host", cfg.URL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logr == nil {
		logr = zap.NewNop().Sugar()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "sfrest-go/" + Version
	}

	return &Connection{
		baseURL:   baseURL,
		user:      cfg.User,
		apiKey:    cfg.APIKey,
		userAgent: userAgent,
		client:    httpClient,
		log:       logr,
	}, nil
}

func (c *Connection) url(path string) string {
	return c.baseURL.String() + path
}

func (c *Connection) Get(ctx context.Context, path string) (Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Connection) Delete(ctx context.Context, path string) (Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Connection) Post(ctx context.Context, path string, body []byte) (Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Connection) Put(ctx context.Context, path string, body []byte) (Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Connection) do(ctx context.Context, method, path string, body []byte) (Response, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create request")
	}
	req.SetBasicAuth(c.user, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		observe(method, 0, time.Since(start))
		return nil, errors.Wrap(err, "Request to Site Factory API failed")
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	observe(method, resp.StatusCode, elapsed)
	c.log.Debugw("Site Factory API request", "method", method, "path", req.URL.Path, "status", resp.StatusCode, "duration", elapsed)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read response body")
	}

	return accessCheck(resp.StatusCode, b)
}
