// Package httpfetch downloads remote import sources.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

const maxRedirects = 5

// Fetcher implements ports.URLFetcher with an address guard applied at dial time,
// so hostnames that resolve to private addresses are refused as well.
type Fetcher struct {
	client *http.Client
}

var _ ports.URLFetcher = (*Fetcher)(nil)

// Option configures a Fetcher
type Option func(*options)

type options struct {
	timeout   time.Duration
	allowIP   func(net.IP) bool
	userAgent string
}

// WithTimeout bounds the whole request
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithAddressPolicy replaces the dial-time address check. Tests use it to reach httptest servers.
func WithAddressPolicy(allow func(net.IP) bool) Option {
	return func(o *options) { o.allowIP = allow }
}

// New creates a fetcher
func New(opts ...Option) *Fetcher {
	o := options{
		timeout:   30 * time.Second,
		allowIP:   func(ip net.IP) bool { return !domain.DisallowedIP(ip) },
		userAgent: "ruleweaver-import",
	}
	for _, opt := range opts {
		opt(&o)
	}

	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: func(_, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			ip := net.ParseIP(host)
			if ip == nil || !o.allowIP(ip) {
				return &application.PolicyViolationError{Reason: fmt.Sprintf("address %s is not allowed", host)}
			}
			return nil
		},
	}

	transport := &http.Transport{
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConns:          4,
		IdleConnTimeout:       30 * time.Second,
	}

	client := &http.Client{
		Transport: &userAgentTransport{base: transport, agent: o.userAgent},
		Timeout:   o.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if _, err := domain.CheckImportURL(req.URL.String()); err != nil {
				return &application.PolicyViolationError{Reason: "redirect: " + err.Error()}
			}
			return nil
		},
	}
	return &Fetcher{client: client}
}

// Fetch downloads rawURL. Bodies larger than maxBytes are an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, maxBytes int64) (*ports.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain, application/json, application/yaml, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		var policy *application.PolicyViolationError
		if errors.As(err, &policy) {
			return nil, policy
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if maxBytes > 0 && resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("response is %s, larger than the %s limit",
			humanize.IBytes(uint64(resp.ContentLength)), humanize.IBytes(uint64(maxBytes)))
	}

	reader := io.Reader(resp.Body)
	if maxBytes > 0 {
		reader = io.LimitReader(resp.Body, maxBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if maxBytes > 0 && int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("response is larger than the %s limit", humanize.IBytes(uint64(maxBytes)))
	}

	return &ports.FetchResult{
		FinalURL:    resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}
