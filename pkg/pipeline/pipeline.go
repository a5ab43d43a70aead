// Package pipeline orchestrates one discovery-and-resolution request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/extract"
	"github.com/dtnitsch/page-visuals/pkg/fallback"
	"github.com/dtnitsch/page-visuals/pkg/fetcher"
	"github.com/dtnitsch/page-visuals/pkg/metadata"
	"github.com/dtnitsch/page-visuals/pkg/resolver"
)

// ErrNoAsset is returned when primary discovery found nothing and every
// enabled fallback tier was exhausted or disabled.
var ErrNoAsset = errors.New("no asset could be resolved")

// Engine wires the fetcher, extractors, resolver and fallback cascade into
// the per-request pipeline. One Engine serves many concurrent requests; the
// only cross-request state lives in the cascade's cached default image.
type Engine struct {
	cfg       *models.Config
	fetcher   *fetcher.Fetcher
	collector *extract.Collector
	resolver  *resolver.Resolver
	logger    *slog.Logger

	Cascade *fallback.Cascade
}

func NewEngine(cfg *models.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	f := fetcher.NewFetcher(cfg, logger)
	res := resolver.NewResolver(f, cfg.MaxImageSize, logger)
	return &Engine{
		cfg:       cfg,
		fetcher:   f,
		collector: extract.NewCollector(f, logger),
		resolver:  res,
		logger:    logger,
		Cascade:   fallback.NewCascade(cfg, res, logger),
	}
}

// Request describes one resolution request.
type Request struct {
	URL          string
	WantIcon     bool
	WantImage    bool   // social-preview image
	Size         int    // requested output size, passed to the external fallback service
	DefaultImage string // caller-supplied default image URL, authoritative if set
}

// Result is the outcome of one request. Icon and Image are nil for asset
// classes that were not requested or could not be resolved.
type Result struct {
	RequestID string
	URL       string
	FinalURL  string
	Metadata  models.PageMetadata
	Icon      *models.ResolvedAsset
	Image     *models.ResolvedAsset
	TimedOut  bool
	Duration  time.Duration
}

type primaryOut struct {
	finalURL string
	meta     models.PageMetadata
	icon     *models.ResolvedAsset
	image    *models.ResolvedAsset
}

// Resolve runs the full pipeline: fetch markup once, extract and rank
// candidates, resolve them in order, and fall back when discovery yields
// nothing. The whole primary phase races a single timer; when it fires the
// pipeline proceeds to the fallback cascade as if nothing had been found,
// abandoning (not aborting) any in-flight work.
//
// A non-nil Result is returned even alongside an error so callers can keep
// whatever metadata was extracted.
func (e *Engine) Resolve(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res := &Result{RequestID: uuid.NewString(), URL: req.URL}
	logger := e.logger.With("request_id", res.RequestID, "url", req.URL)

	ch := make(chan primaryOut, 1)
	go func() {
		ch <- e.runPrimary(ctx, req, logger)
	}()

	timer := time.NewTimer(e.cfg.RequestTimeout())
	defer timer.Stop()

	select {
	case out := <-ch:
		res.FinalURL = out.finalURL
		res.Metadata = out.meta
		res.Icon = out.icon
		res.Image = out.image
	case <-timer.C:
		res.TimedOut = true
		logger.Warn("discovery deadline exceeded, deferring to fallback cascade")
	case <-ctx.Done():
		res.TimedOut = true
	}

	host := targetHost(res.FinalURL, req.URL)

	var tierErrs []error
	if req.WantIcon && res.Icon == nil {
		asset, err := e.Cascade.Run(ctx, host, req.Size, req.DefaultImage)
		if err != nil {
			if errors.Is(err, fallback.ErrDefaultImageFailed) {
				res.Duration = time.Since(start)
				return res, err
			}
			tierErrs = append(tierErrs, err)
		} else {
			res.Icon = asset
		}
	}
	if req.WantImage && res.Image == nil {
		asset, err := e.Cascade.Run(ctx, host, req.Size, req.DefaultImage)
		if err != nil {
			if errors.Is(err, fallback.ErrDefaultImageFailed) {
				res.Duration = time.Since(start)
				return res, err
			}
			tierErrs = append(tierErrs, err)
		} else {
			res.Image = asset
		}
	}

	res.Duration = time.Since(start)

	anyFound := (req.WantIcon && res.Icon != nil) || (req.WantImage && res.Image != nil)
	if !anyFound {
		err := ErrNoAsset
		if len(tierErrs) > 0 {
			err = fmt.Errorf("%w: %w", ErrNoAsset, errors.Join(tierErrs...))
		}
		return res, err
	}
	return res, nil
}

// runPrimary fetches the page once and resolves the requested asset classes.
// The two classes have independent candidate lists and resolve concurrently;
// within each list resolution stays strictly sequential.
func (e *Engine) runPrimary(ctx context.Context, req Request, logger *slog.Logger) primaryOut {
	var out primaryOut

	pc, err := e.fetcher.FetchPage(ctx, req.URL)
	if err != nil {
		logger.Warn("markup fetch failed", "error", err)
		return out
	}
	out.finalURL = pc.FinalURL

	meta := metadata.Extract(pc)
	hints := metadata.Enrich(pc, &meta)
	out.meta = meta

	g, gctx := errgroup.WithContext(ctx)
	if req.WantIcon {
		g.Go(func() error {
			cands := e.collector.IconCandidates(gctx, pc)
			cands = appendHint(cands, hints.Favicon, pc.BaseOrigin, 25)
			extract.SortByScore(cands)
			logger.Debug("icon candidates collected", "count", len(cands))
			out.icon = e.resolver.Resolve(gctx, cands)
			return nil
		})
	}
	if req.WantImage {
		g.Go(func() error {
			cands := e.collector.ImageCandidates(pc)
			cands = appendHint(cands, hints.Image, pc.BaseOrigin, 30)
			extract.SortByScore(cands)
			logger.Debug("image candidates collected", "count", len(cands))
			out.image = e.resolver.Resolve(gctx, cands)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// appendHint adds a readability-surfaced reference as a low-score extra
// candidate, skipping URLs the extractors already produced.
func appendHint(cands []models.Candidate, ref, baseOrigin string, score int) []models.Candidate {
	if ref == "" {
		return cands
	}
	resolved := extract.ResolveRef(ref, baseOrigin)
	for _, c := range cands {
		if c.URL == resolved {
			return cands
		}
	}
	return append(cands, models.Candidate{
		URL:        resolved,
		FormatHint: extract.FormatFromRef(resolved),
		Source:     models.SourceReadability,
		Score:      score,
	})
}

func targetHost(finalURL, requestedURL string) string {
	if finalURL != "" {
		if u, err := url.Parse(finalURL); err == nil && u.Host != "" {
			return u.Host
		}
	}
	if u, err := url.Parse(fetcher.NormalizeTarget(requestedURL)); err == nil {
		return u.Host
	}
	return ""
}
