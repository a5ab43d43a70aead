package extract

import (
	"context"
	"encoding/json"

	"github.com/dtnitsch/page-visuals/models"
)

const (
	acceptManifest  = "application/manifest+json,application/json;q=0.9,*/*;q=0.8"
	maxManifestSize = 1 << 20 // 1MB is generous for a web app manifest
)

// webManifest is the subset of the web-app-manifest format we consume.
type webManifest struct {
	Icons []manifestIcon `json:"icons"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// IconsFromManifest fetches {origin}/manifest.json and emits one candidate
// per icons[] entry. Any failure (network, non-2xx, malformed JSON, missing
// icons) yields zero candidates; a broken manifest never fails the pipeline.
func (c *Collector) IconsFromManifest(ctx context.Context, pc *models.PageContext) []models.Candidate {
	manifestURL := pc.BaseOrigin + "/manifest.json"

	data, err := c.fetcher.FetchBytes(ctx, manifestURL, acceptManifest, maxManifestSize)
	if err != nil {
		c.logger.Debug("manifest fetch failed", "url", manifestURL, "error", err)
		return nil
	}

	var m webManifest
	if err := json.Unmarshal(data, &m); err != nil {
		c.logger.Debug("manifest parse failed", "url", manifestURL, "error", err)
		return nil
	}

	var out []models.Candidate
	for _, icon := range m.Icons {
		if icon.Src == "" {
			continue
		}
		ref := ResolveRef(icon.Src, pc.BaseOrigin)
		width, height := ParseSizes(icon.Sizes)

		format := NormalizeFormat(icon.Type)
		if format == "" {
			format = FormatFromRef(ref)
		}

		out = append(out, models.Candidate{
			URL:        ref,
			Width:      width,
			Height:     height,
			FormatHint: format,
			Source:     models.SourceManifest,
			Score:      IconScore(width, height, format, ""),
		})
	}
	return out
}
