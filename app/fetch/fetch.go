// Package fetch is the transport collaborator: fetch a URL with extra headers,
// follow redirects, return status and body.
package fetch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 5 << 20

const maxRedirects = 10

type Response struct {
	Status int
	Body   []byte
	URL    string // final URL after redirects
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

type HTTPFetcher struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
}

func NewHTTPFetcher(timeout time.Duration, userAgent, acceptLanguage string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	if f.acceptLanguage != "" {
		req.Header.Set("Accept-Language", f.acceptLanguage)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/rss+xml,application/xml;q=0.9,*/*;q=0.8")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Status: resp.StatusCode,
		Body:   data,
		URL:    resp.Request.URL.String(),
	}, nil
}

// ErrStatus is returned by Get for non-2xx responses.
var ErrStatus = errors.New("unexpected HTTP status")

// Get fetches url and returns the body of a 2xx response.
func Get(ctx context.Context, f Fetcher, url string, headers map[string]string) ([]byte, error) {
	resp, err := f.Fetch(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.Status)
	}
	return resp.Body, nil
}

// BasicAuth returns the Authorization header value for a user/password pair.
func BasicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
