package resolve

import (
	"errors"

	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/fallback"
	"github.com/dtnitsch/page-visuals/pkg/pipeline"
)

// errorType maps a pipeline error to the short code recorded in history.
func errorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fallback.ErrDefaultImageFailed):
		return "default_image_failed"
	case errors.Is(err, pipeline.ErrNoAsset):
		return "no_asset"
	default:
		return "fetch_error"
	}
}

func assetSummary(asset *models.ResolvedAsset, path string) *AssetSummary {
	if asset == nil {
		return nil
	}
	return &AssetSummary{
		Source:    string(asset.Source),
		Format:    asset.Format,
		Score:     asset.Score,
		SizeBytes: len(asset.Bytes),
		Fallback:  asset.IsFallback,
		Origin:    asset.OriginURL,
		Path:      path,
	}
}

// BuildSummary converts one worker result into its run-summary entry.
func BuildSummary(r Result) ResultSummary {
	summary := ResultSummary{URL: r.URL}

	if r.Res != nil {
		summary.FinalURL = r.Res.FinalURL
		summary.TimedOut = r.Res.TimedOut
		summary.DurationMS = r.Res.Duration.Milliseconds()
		summary.Title = r.Res.Metadata.Title
		summary.Description = r.Res.Metadata.Description
		summary.SiteName = r.Res.Metadata.SiteName
		summary.Language = r.Res.Metadata.Language
		summary.Icon = assetSummary(r.Res.Icon, r.IconPath)
		summary.Image = assetSummary(r.Res.Image, r.ImagePath)
	}

	if r.Err != nil {
		summary.Status = "failed"
		summary.Error = r.Err.Error()
	} else {
		summary.Status = "success"
	}
	return summary
}

// BuildRunSummary aggregates all worker results plus run-level stats.
func BuildRunSummary(results []Result, totalSeconds float64) RunSummary {
	run := RunSummary{
		Stats: Stats{
			TotalURLs:        len(results),
			TotalTimeSeconds: totalSeconds,
			Sources:          make(map[string]int),
		},
	}

	for _, r := range results {
		summary := BuildSummary(r)
		run.Results = append(run.Results, summary)

		if summary.Status == "success" {
			run.Stats.Successful++
		} else {
			run.Stats.Failed++
		}
		if summary.Icon != nil {
			run.Stats.Sources[summary.Icon.Source]++
		}
		if summary.Image != nil {
			run.Stats.Sources[summary.Image.Source]++
		}
	}
	return run
}
