// Package extract turns parsed page markup into scored asset candidates.
package extract

import (
	"context"
	"log/slog"
	"sort"

	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/fetcher"
)

// Collector gathers, scores and orders all candidates for a page. Every
// extractor is a pure function over the parsed document except the manifest
// extractor, which performs one extra bounded network fetch.
type Collector struct {
	fetcher *fetcher.Fetcher
	logger  *slog.Logger
}

func NewCollector(f *fetcher.Fetcher, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{fetcher: f, logger: logger}
}

// IconCandidates returns the merged icon-domain candidate list, sorted by
// score descending. The sort is stable so extraction order breaks ties.
func (c *Collector) IconCandidates(ctx context.Context, pc *models.PageContext) []models.Candidate {
	var out []models.Candidate
	out = append(out, IconsFromLinks(pc)...)
	out = append(out, c.IconsFromManifest(ctx, pc)...)
	out = append(out, StaticFallbackIcons(pc.BaseOrigin)...)
	SortByScore(out)
	return out
}

// ImageCandidates returns the merged social-preview candidate list, sorted
// by score descending.
func (c *Collector) ImageCandidates(pc *models.PageContext) []models.Candidate {
	var out []models.Candidate
	out = append(out, SocialFromMeta(pc)...)
	out = append(out, ImagesFromStructuredData(pc)...)
	SortByScore(out)
	return out
}

// SortByScore orders candidates by score descending, stable.
func SortByScore(list []models.Candidate) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
}
