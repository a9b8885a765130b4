//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=../mocks/mock_fetcher.go -package=mocks
package scraping

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/time/rate"

	"stallion/domain"
	"stallion/errors"
)

const (
	DefaultBaseURL     = "https://db.netkeiba.com"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultMaxBodySize = 8 << 20
)

type Config struct {
	BaseURL   string
	UserAgent string
	// Minimum delay between two network requests. Cached pages are not paced.
	Interval time.Duration
	Timeout  time.Duration
	// Larger bodies are refused with errors.ErrPageTooLarge.
	MaxBodySize int64
}

func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		UserAgent:   DefaultUserAgent,
		Interval:    time.Second,
		Timeout:     15 * time.Second,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// PageCache returns errors.ErrCacheMiss when no fresh copy exists. The fingerprint of an expired copy
// may still come back with the miss.
type PageCache interface {
	Get(url string) (domain.Page, error)
	Put(page domain.Page) error
}

// Param is one key=value of a query string. Keys may repeat, as in grade[]=1&grade[]=2.
type Param struct {
	Key   string
	Value string
}

type Query []Param

func (q Query) Add(key string, values ...string) Query {
	for _, v := range values {
		q = append(q, Param{Key: key, Value: v})
	}
	return q
}

func (q Query) Encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// Fetcher downloads pages one at a time at a polite pace and hands them back as UTF-8.
type Fetcher struct {
	cfg     Config
	client  Doer
	limiter *rate.Limiter
	cache   PageCache
	log     *slog.Logger
	now     func() time.Time
}

type Option func(*Fetcher)

func WithDoer(d Doer) Option {
	return func(f *Fetcher) { f.client = d }
}

func WithCache(c PageCache) Option {
	return func(f *Fetcher) { f.cache = c }
}

func NewFetcher(cfg Config, log *slog.Logger, opts ...Option) *Fetcher {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}
	f := &Fetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL joins path and query to the base url.
func (f *Fetcher) URL(path string, query Query) string {
	u := strings.TrimRight(f.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Document fetches and parses a page.
func (f *Fetcher) Document(ctx context.Context, path string, query Query) (*Node, error) {
	page, err := f.Fetch(ctx, f.URL(path, query))
	if err != nil {
		return nil, err
	}
	return ParseDocument(page.Body)
}

// Fetch returns the page at rawURL, from the cache when a fresh copy exists. A downloaded page
// identical to the expired copy is flagged Unchanged.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.Page, error) {
	var previous string
	if f.cache != nil {
		cached, err := f.cache.Get(rawURL)
		switch {
		case err == nil:
			f.log.Debug("Page served from cache", "url", rawURL)
			cached.FromCache = true
			return cached, nil
		case !errors.Is(err, errors.ErrCacheMiss):
			f.log.Warn("Page cache lookup failed", "url", rawURL, "error", err)
		}
		previous = cached.Fingerprint
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return domain.Page{}, err
	}
	body, err := f.download(ctx, rawURL)
	if err != nil {
		return domain.Page{}, err
	}
	page := domain.Page{
		URL:         rawURL,
		Body:        body,
		Fingerprint: Fingerprint(body),
		FetchedAt:   f.now().UTC(),
	}
	page.Unchanged = previous != "" && previous == page.Fingerprint
	if page.Unchanged {
		f.log.Debug("Page unchanged since last fetch", "url", rawURL)
	}
	if f.cache != nil {
		if err := f.cache.Put(page); err != nil {
			f.log.Warn("Unable to cache page", "url", rawURL, "error", err)
		}
	}
	return page, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	start := f.now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d for %s", errors.ErrUnexpectedStatus, resp.StatusCode, rawURL)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > f.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes at %s", errors.ErrPageTooLarge, f.cfg.MaxBodySize, rawURL)
	}
	if !mimetype.Detect(raw).Is("text/html") {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotHTML, rawURL)
	}
	body, err := decoder(raw, resp.Header.Get("Content-Type")).Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	f.log.Debug("Page downloaded", "url", rawURL, "bytes", len(raw), "duration", time.Since(start))
	return body, nil
}

// decoder picks the charset declared by the header, a BOM or a meta tag.
// Undeclared pages are read as EUC-JP, which every page of the site uses.
func decoder(body []byte, contentType string) *encoding.Decoder {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if !certain && name == "windows-1252" {
		enc = japanese.EUCJP
	}
	return enc.NewDecoder()
}

// Fingerprint is a blake2b-256 digest of a page body.
func Fingerprint(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}
