// Package resolver fetches ranked candidates until one validates.
package resolver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/extract"
)

const acceptImage = "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8"

// ByteFetcher is the single network operation the resolver needs.
type ByteFetcher interface {
	FetchBytes(ctx context.Context, rawURL, accept string, limit int64) ([]byte, error)
}

// Resolver walks a score-sorted candidate list and returns the first
// candidate whose bytes validate. Strictly sequential, no speculative
// parallel fetches: score order makes the first success the best available
// result.
type Resolver struct {
	fetcher      ByteFetcher
	maxImageSize int64
	logger       *slog.Logger
}

func NewResolver(fetcher ByteFetcher, maxImageSize int64, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{fetcher: fetcher, maxImageSize: maxImageSize, logger: logger}
}

// Resolve returns the first validated candidate, or nil when the list is
// exhausted. Exhaustion is not an error; every per-candidate failure is
// recovered locally by moving on.
func (r *Resolver) Resolve(ctx context.Context, candidates []models.Candidate) *models.ResolvedAsset {
	for _, cand := range candidates {
		if ctx.Err() != nil {
			return nil
		}

		asset := r.tryCandidate(ctx, cand)
		if asset != nil {
			return asset
		}
	}
	return nil
}

func (r *Resolver) tryCandidate(ctx context.Context, cand models.Candidate) *models.ResolvedAsset {
	var (
		data []byte
		hint = cand.FormatHint
	)

	if strings.HasPrefix(cand.URL, "data:") {
		// Inline payloads decode directly; never a network fetch.
		decoded, mime, err := DecodeDataURI(cand.URL)
		if err != nil {
			r.logger.Debug("data URI decode failed", "source", cand.Source, "error", err)
			return nil
		}
		data = decoded
		if mime != "" {
			hint = mime
		}
	} else {
		fetched, err := r.fetcher.FetchBytes(ctx, cand.URL, acceptImage, r.maxImageSize)
		if err != nil {
			r.logger.Debug("candidate fetch failed", "url", cand.URL, "error", err)
			return nil
		}
		data = fetched
	}

	if len(data) == 0 || int64(len(data)) > r.maxImageSize {
		r.logger.Debug("candidate payload rejected", "url", cand.URL, "size", len(data))
		return nil
	}

	format, ok := validate(data, hint)
	if !ok {
		r.logger.Debug("candidate failed image validation", "url", cand.URL)
		return nil
	}

	return &models.ResolvedAsset{
		Bytes:      data,
		Format:     format,
		Source:     cand.Source,
		OriginURL:  cand.URL,
		Score:      cand.Score,
		IsFallback: cand.Source.IsFallbackSource(),
	}
}

// validate checks that the bytes are a structurally plausible image and
// determines the final format: magic bytes first, the declared hint only when
// sniffing is inconclusive, and png as the last resort.
func validate(data []byte, hint string) (string, bool) {
	format := SniffFormat(data)
	if format != "" {
		return format, true
	}

	// Sniffing found none of our known containers; accept anything the
	// broader content sniffer still recognizes as an image.
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return "", false
	}

	if normalized := extract.NormalizeFormat(hint); normalized != "" {
		return normalized, true
	}
	return "png", true
}
