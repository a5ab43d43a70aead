// Package fetcher retrieves page markup and raw asset bytes over HTTP.
package fetcher

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"

	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/attempt"
)

const (
	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.8"
)

type Fetcher struct {
	client *http.Client
	cfg    *models.Config
	logger *slog.Logger
}

func NewFetcher(cfg *models.Config, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		// Redirects are followed by default; the final URL is taken from the
		// response so relative references resolve against the actual origin.
		client: &http.Client{},
		cfg:    cfg,
		logger: logger,
	}
}

// NormalizeTarget prefixes https:// when the input carries no scheme.
func NormalizeTarget(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}

type fetchedPage struct {
	body        []byte
	contentType string
	finalURL    *url.URL
}

// FetchPage retrieves and parses the markup for a target URL. The first
// attempt identifies honestly; if it fails for any reason (network error,
// non-2xx, timeout) a second attempt repeats the request with a desktop
// browser user-agent to get past naive bot blocking.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (*models.PageContext, error) {
	target := NormalizeTarget(rawURL)

	page, err := attempt.First(ctx,
		f.htmlStep(target, f.cfg.UserAgent),
		f.htmlStep(target, f.cfg.BrowserUserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}

	reader, err := charset.NewReader(bytes.NewReader(page.body), page.contentType)
	if err != nil {
		reader = bytes.NewReader(page.body)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML for %s: %w", target, err)
	}

	return &models.PageContext{
		FinalURL:   page.finalURL.String(),
		BaseOrigin: page.finalURL.Scheme + "://" + page.finalURL.Host,
		Doc:        doc,
	}, nil
}

func (f *Fetcher) htmlStep(target, userAgent string) attempt.Step[fetchedPage] {
	return func(ctx context.Context) (fetchedPage, error) {
		ctx, cancel := context.WithTimeout(ctx, f.cfg.RequestTimeout())
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fetchedPage{}, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", acceptHTML)
		req.Header.Set("Accept-Language", acceptLanguage)
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")

		resp, err := f.client.Do(req)
		if err != nil {
			f.logger.Debug("markup fetch attempt failed", "url", target, "error", err)
			return fetchedPage{}, fmt.Errorf("failed to make HTTP request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			f.logger.Debug("markup fetch got non-2xx", "url", target, "status", resp.StatusCode)
			return fetchedPage{}, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
		}

		body, err := decodeBody(resp, f.cfg.MaxHTMLSize)
		if err != nil {
			return fetchedPage{}, err
		}

		finalURL := req.URL
		if resp.Request != nil && resp.Request.URL != nil {
			finalURL = resp.Request.URL
		}
		return fetchedPage{
			body:        body,
			contentType: resp.Header.Get("Content-Type"),
			finalURL:    finalURL,
		}, nil
	}
}

// FetchBytes issues a single bounded GET and returns the payload. Used for
// manifest and image candidate fetches, which get exactly one attempt each.
// Reads up to limit+1 bytes so callers can detect an oversized payload.
func (f *Fetcher) FetchBytes(ctx context.Context, rawURL, accept string, limit int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.RequestTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s, status code: %d", rawURL, resp.StatusCode)
	}

	return decodeBody(resp, limit)
}

// decodeBody reads a response body, undoing any content encoding we asked
// for, bounded to limit+1 bytes.
func decodeBody(resp *http.Response, limit int64) ([]byte, error) {
	reader := io.Reader(resp.Body)

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode gzip body: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	}

	if limit > 0 {
		reader = io.LimitReader(reader, limit+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
