// Package download fetches map data over HTTP on behalf of map sources and
// routing engines. A Downloader owns the cookie jar shared by its requests.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// Version is reported in the User-Agent header.
var Version = "0.1"

// DefaultSeedURL is fetched once to prime the cookie jar before the first
// download. The Google map server sets a PREF cookie its tile servers expect.
const DefaultSeedURL = "http://maps.google.com/"

// ErrHTTPStatus is returned, wrapped in a *StatusError, for responses
// outside the 2xx range.
var ErrHTTPStatus = errors.New("unexpected http status")

// StatusError carries the status of a failed response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets errors.Is match ErrHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// Options tune a single download.
type Options struct {
	// Referer is sent as the Referer header when not empty.
	Referer string
	// FollowLocation is the number of redirects to follow. With zero a
	// redirect is reported as a *StatusError.
	FollowLocation int
}

// Downloader performs blocking HTTP fetches. It is safe for concurrent use.
type Downloader struct {
	client    *http.Client
	userAgent string
	seedURL   string
	metrics   *Metrics
	log       *zap.Logger

	mu  sync.Mutex
	jar http.CookieJar
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithLogger sets the logger for bootstrap and request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Downloader) {
		if l != nil {
			d.log = l
		}
	}
}

// WithSeedURL overrides the URL fetched to prime the cookie jar. An empty
// URL skips priming.
func WithSeedURL(u string) Option {
	return func(d *Downloader) {
		d.seedURL = u
	}
}

// WithTimeout bounds each request, including the priming fetch.
func WithTimeout(t time.Duration) Option {
	return func(d *Downloader) {
		d.client.Timeout = t
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(d *Downloader) {
		d.client.Transport = rt
	}
}

// WithMetrics records every download in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Downloader) {
		d.metrics = m
	}
}

// New returns a Downloader. The cookie jar is created lazily on the first
// download.
func New(opts ...Option) *Downloader {
	d := &Downloader{
		client:    &http.Client{Timeout: 60 * time.Second},
		userAgent: "vikcoord/" + Version,
		seedURL:   DefaultSeedURL,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// UserAgent returns the User-Agent header value sent with every request.
func (d *Downloader) UserAgent() string {
	return d.userAgent
}

// cookieJar returns the shared jar, priming it on first use. A failed
// priming is logged and retried on the next call; the download itself
// goes ahead with the empty jar.
func (d *Downloader) cookieJar(ctx context.Context) http.CookieJar {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.jar != nil {
		return d.jar
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		panic(err) // only on invalid options
	}
	if d.seedURL == "" {
		d.jar = jar
		return jar
	}

	if err := d.prime(ctx, jar); err != nil {
		d.log.Warn("cookie jar priming failed", zap.String("url", d.seedURL), zap.Error(err))
		return jar
	}
	d.jar = jar
	return jar
}

func (d *Downloader) prime(ctx context.Context, jar http.CookieJar) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.seedURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", d.userAgent)

	client := *d.client
	client.Jar = jar
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: d.seedURL, StatusCode: resp.StatusCode}
	}
	return nil
}

// DownloadURI fetches uri and copies the body to w. It returns the number of
// bytes written.
func (d *Downloader) DownloadURI(ctx context.Context, uri string, w io.Writer, opts *Options) (int64, error) {
	start := time.Now()
	n, err := d.download(ctx, uri, w, opts)
	d.metrics.observe(n, time.Since(start), err)
	if err != nil {
		d.log.Debug("download failed", zap.String("url", uri), zap.Error(err))
		return n, err
	}
	d.log.Debug("downloaded", zap.String("url", uri), zap.Int64("bytes", n),
		zap.Duration("took", time.Since(start)))
	return n, nil
}

func (d *Downloader) download(ctx context.Context, uri string, w io.Writer, opts *Options) (int64, error) {
	if opts == nil {
		opts = &Options{}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	if opts.Referer != "" {
		req.Header.Set("Referer", opts.Referer)
	}

	client := *d.client
	client.Jar = d.cookieJar(ctx)
	client.CheckRedirect = redirectPolicy(opts.FollowLocation)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &StatusError{URL: uri, StatusCode: resp.StatusCode}
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("reading %s: %w", uri, err)
	}
	return n, nil
}

func redirectPolicy(max int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if max <= 0 {
			return http.ErrUseLastResponse
		}
		if len(via) > max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		return nil
	}
}

// GetURL fetches http://host+uri.
func (d *Downloader) GetURL(ctx context.Context, host, uri string, w io.Writer, opts *Options) (int64, error) {
	return d.DownloadURI(ctx, "http://"+host+uri, w, opts)
}
