package resolve

import (
	"fmt"
	"testing"
	"time"

	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/fallback"
	"github.com/dtnitsch/page-visuals/pkg/pipeline"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no error", nil, ""},
		{"default image failed", fmt.Errorf("wrapped: %w", fallback.ErrDefaultImageFailed), "default_image_failed"},
		{"no asset", fmt.Errorf("wrapped: %w", pipeline.ErrNoAsset), "no_asset"},
		{"anything else", fmt.Errorf("connection refused"), "fetch_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorType(tt.err); got != tt.want {
				t.Errorf("errorType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSummary(t *testing.T) {
	r := Result{
		URL: "https://example.com",
		Res: &pipeline.Result{
			RequestID: "req-1",
			FinalURL:  "https://www.example.com/",
			Metadata: models.PageMetadata{
				Title:    "Example",
				Language: "en",
			},
			Icon: &models.ResolvedAsset{
				Bytes:     []byte{1, 2, 3},
				Format:    "png",
				Source:    models.SourceLinkTag,
				OriginURL: "https://www.example.com/icon.png",
			},
			Duration: 1500 * time.Millisecond,
		},
		IconPath: "assets/example_com-icon.png",
	}

	got := BuildSummary(r)

	if got.Status != "success" {
		t.Errorf("Status = %q, want success", got.Status)
	}
	if got.FinalURL != "https://www.example.com/" {
		t.Errorf("FinalURL = %q", got.FinalURL)
	}
	if got.DurationMS != 1500 {
		t.Errorf("DurationMS = %d, want 1500", got.DurationMS)
	}
	if got.Icon == nil {
		t.Fatal("Icon summary = nil")
	}
	if got.Icon.Source != "link-tag" || got.Icon.SizeBytes != 3 {
		t.Errorf("Icon summary = %+v", got.Icon)
	}
	if got.Icon.Path != "assets/example_com-icon.png" {
		t.Errorf("Icon.Path = %q", got.Icon.Path)
	}
	if got.Image != nil {
		t.Errorf("Image summary = %+v, want nil", got.Image)
	}
}

func TestBuildSummary_Failure(t *testing.T) {
	r := Result{
		URL: "https://broken.example.com",
		Err: fmt.Errorf("boom"),
	}

	got := BuildSummary(r)
	if got.Status != "failed" {
		t.Errorf("Status = %q, want failed", got.Status)
	}
	if got.Error != "boom" {
		t.Errorf("Error = %q", got.Error)
	}
}

func TestBuildRunSummary(t *testing.T) {
	results := []Result{
		{
			URL: "https://a.example.com",
			Res: &pipeline.Result{
				Icon: &models.ResolvedAsset{Format: "png", Source: models.SourceLinkTag},
			},
		},
		{
			URL: "https://b.example.com",
			Res: &pipeline.Result{
				Icon: &models.ResolvedAsset{Format: "png", Source: models.SourceExternalAPI, IsFallback: true},
			},
		},
		{
			URL: "https://c.example.com",
			Err: fmt.Errorf("unreachable"),
		},
	}

	run := BuildRunSummary(results, 2.5)

	if run.Stats.TotalURLs != 3 {
		t.Errorf("TotalURLs = %d, want 3", run.Stats.TotalURLs)
	}
	if run.Stats.Successful != 2 || run.Stats.Failed != 1 {
		t.Errorf("Successful/Failed = %d/%d, want 2/1", run.Stats.Successful, run.Stats.Failed)
	}
	if run.Stats.TotalTimeSeconds != 2.5 {
		t.Errorf("TotalTimeSeconds = %f", run.Stats.TotalTimeSeconds)
	}
	if run.Stats.Sources["link-tag"] != 1 || run.Stats.Sources["external-fallback"] != 1 {
		t.Errorf("Sources = %v", run.Stats.Sources)
	}
	if len(run.Results) != 3 {
		t.Errorf("Results length = %d, want 3", len(run.Results))
	}
}
