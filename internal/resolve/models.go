package resolve

import (
	"github.com/dtnitsch/page-visuals/pkg/pipeline"
)

// Job defines a task for a worker to perform.
type Job struct {
	URL string
}

// Result holds the outcome of a processed job.
type Result struct {
	URL       string
	Res       *pipeline.Result
	IconPath  string
	ImagePath string
	Err       error
}

// AssetSummary describes one resolved asset in the run summary.
type AssetSummary struct {
	Source    string `yaml:"source" json:"source"`
	Format    string `yaml:"format" json:"format"`
	Score     int    `yaml:"score" json:"score"`
	SizeBytes int    `yaml:"size_bytes" json:"size_bytes"`
	Fallback  bool   `yaml:"fallback,omitempty" json:"fallback,omitempty"`
	Origin    string `yaml:"origin,omitempty" json:"origin,omitempty"`
	Path      string `yaml:"path,omitempty" json:"path,omitempty"`
}

// ResultSummary is the per-URL entry of the run summary.
type ResultSummary struct {
	URL        string `yaml:"url" json:"url"`
	FinalURL   string `yaml:"final_url,omitempty" json:"final_url,omitempty"`
	Status     string `yaml:"status" json:"status"`
	Error      string `yaml:"error,omitempty" json:"error,omitempty"`
	TimedOut   bool   `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
	DurationMS int64  `yaml:"duration_ms" json:"duration_ms"`

	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	SiteName    string `yaml:"site_name,omitempty" json:"site_name,omitempty"`
	Language    string `yaml:"language,omitempty" json:"language,omitempty"`

	Icon  *AssetSummary `yaml:"icon,omitempty" json:"icon,omitempty"`
	Image *AssetSummary `yaml:"image,omitempty" json:"image,omitempty"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalURLs        int            `yaml:"total_urls" json:"total_urls"`
	Successful       int            `yaml:"successful" json:"successful"`
	Failed           int            `yaml:"failed" json:"failed"`
	TotalTimeSeconds float64        `yaml:"total_time_seconds" json:"total_time_seconds"`
	Sources          map[string]int `yaml:"sources,omitempty" json:"sources,omitempty"`
}

// RunSummary is the structured output for the entire run.
type RunSummary struct {
	Results []ResultSummary `yaml:"results" json:"results"`
	Stats   Stats           `yaml:"stats" json:"stats"`
}
