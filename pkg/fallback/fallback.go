// Package fallback supplies last-resort assets when discovery finds nothing.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/attempt"
	"github.com/dtnitsch/page-visuals/pkg/resolver"
)

// ErrDefaultImageFailed is returned when a caller-supplied default image was
// requested but could not be fetched or validated. A caller who supplied a
// default expects it honored or an explicit error, never a silent
// substitution by a later tier.
var ErrDefaultImageFailed = errors.New("caller-supplied default image failed")

// ErrExhausted is returned when every enabled fallback tier failed.
var ErrExhausted = errors.New("all fallback tiers exhausted")

// Cascade tries the ordered fallback tiers: the external favicon service,
// then a caller-supplied default, then the process-wide cached default.
type Cascade struct {
	cfg      *models.Config
	resolver *resolver.Resolver
	logger   *slog.Logger

	// LoadDefault loads the process-wide default image. Exposed so tests can
	// count load attempts; NewCascade installs a loader for DefaultImageURL.
	LoadDefault func(ctx context.Context) (*models.ResolvedAsset, error)

	group  singleflight.Group
	cached atomic.Pointer[models.ResolvedAsset]
}

func NewCascade(cfg *models.Config, res *resolver.Resolver, logger *slog.Logger) *Cascade {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cascade{cfg: cfg, resolver: res, logger: logger}
	if cfg.DefaultImageURL != "" {
		c.LoadDefault = func(ctx context.Context) (*models.ResolvedAsset, error) {
			return c.resolveOne(ctx, cfg.DefaultImageURL, models.SourceCachedDefault)
		}
	}
	return c
}

// Run produces exactly one fallback asset, or an error when every enabled
// tier failed. callerDefault, when set, is authoritative: its failure is
// terminal rather than falling through to the cached default.
func (c *Cascade) Run(ctx context.Context, host string, size int, callerDefault string) (*models.ResolvedAsset, error) {
	var steps []attempt.Step[*models.ResolvedAsset]

	if c.cfg.UseFallbackAPI && c.cfg.FallbackAPITemplate != "" && host != "" {
		steps = append(steps, c.externalStep(host, size))
	}
	if callerDefault != "" {
		steps = append(steps, c.callerDefaultStep(callerDefault))
	}
	if c.LoadDefault != nil {
		steps = append(steps, c.cachedDefaultStep())
	}

	if len(steps) == 0 {
		return nil, ErrExhausted
	}

	asset, err := attempt.First(ctx, steps...)
	if err != nil {
		if errors.Is(err, ErrDefaultImageFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrExhausted, err)
	}
	return asset, nil
}

func (c *Cascade) externalStep(host string, size int) attempt.Step[*models.ResolvedAsset] {
	return func(ctx context.Context) (*models.ResolvedAsset, error) {
		if size <= 0 {
			size = 64
		}
		endpoint := fmt.Sprintf(c.cfg.FallbackAPITemplate, host, size)
		asset, err := c.resolveOne(ctx, endpoint, models.SourceExternalAPI)
		if err != nil {
			c.logger.Debug("external fallback service failed", "host", host, "error", err)
		}
		return asset, err
	}
}

func (c *Cascade) callerDefaultStep(defaultURL string) attempt.Step[*models.ResolvedAsset] {
	return func(ctx context.Context) (*models.ResolvedAsset, error) {
		// Fetched fresh per request, never cached.
		asset, err := c.resolveOne(ctx, defaultURL, models.SourceCallerDefault)
		if err != nil {
			return nil, attempt.Terminal(fmt.Errorf("%w: %s", ErrDefaultImageFailed, defaultURL))
		}
		return asset, nil
	}
}

func (c *Cascade) cachedDefaultStep() attempt.Step[*models.ResolvedAsset] {
	return func(ctx context.Context) (*models.ResolvedAsset, error) {
		if asset := c.cached.Load(); asset != nil {
			return asset, nil
		}

		// Concurrent first requests converge on one load; a failed load is
		// not cached, so a later request may retry.
		v, err, _ := c.group.Do("default-image", func() (any, error) {
			if asset := c.cached.Load(); asset != nil {
				return asset, nil
			}
			asset, err := c.LoadDefault(ctx)
			if err != nil {
				return nil, err
			}
			c.cached.Store(asset)
			return asset, nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load default image: %w", err)
		}
		return v.(*models.ResolvedAsset), nil
	}
}

// resolveOne runs the candidate resolver over a single synthetic candidate.
func (c *Cascade) resolveOne(ctx context.Context, rawURL string, source models.SourceTag) (*models.ResolvedAsset, error) {
	asset := c.resolver.Resolve(ctx, []models.Candidate{{
		URL:    rawURL,
		Source: source,
		Score:  1, // only ever tried last among network attempts
	}})
	if asset == nil {
		return nil, fmt.Errorf("fallback source %s yielded no usable image", source)
	}
	return asset, nil
}
