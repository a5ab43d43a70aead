package resolve

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/page-visuals/internal/common"
	"github.com/dtnitsch/page-visuals/models"
	"github.com/dtnitsch/page-visuals/pkg/db"
	"github.com/dtnitsch/page-visuals/pkg/pipeline"
	"github.com/dtnitsch/page-visuals/pkg/storage"
)

// ResolveAction runs the discovery pipeline over the requested URLs with a
// worker pool and prints a run summary.
func ResolveAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("timeout-ms") {
		cfg.RequestTimeoutMS = c.Int("timeout-ms")
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("no-fallback-api") {
		cfg.UseFallbackAPI = false
	}

	opts, err := parseOptions(c)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if c.String("urls") == "" {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  page-visuals resolve --urls "https://example.com,https://example.org"`)
		fmt.Fprintln(os.Stderr, `  page-visuals resolve --urls "example.com" --assets icon --size 128 --output-dir assets`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: page-visuals resolve --help or page-visuals quickstart")
		os.Exit(1)
	}

	urls, invalidURLs := common.SanitizeAndValidateURLs(strings.Split(c.String("urls"), ","))
	if len(invalidURLs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		os.Exit(1)
	}

	// History is best-effort observability; a broken DB never blocks a run.
	var database *db.DB
	if !c.Bool("no-history") {
		database, err = db.Open()
		if err != nil {
			logger.Warn("failed to open history database, continuing without", "error", err)
		} else {
			defer database.Close()
		}
	}

	engine := pipeline.NewEngine(cfg, logger)
	store := &storage.Storage{}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(urls))
	results := make(chan Result, len(urls))

	for w := 1; w <= cfg.WorkerCount; w++ {
		wg.Add(1)
		go worker(w, engine, store, opts, logger, &wg, jobs, results)
	}
	for _, rawURL := range urls {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)

	var allResults []Result
	for result := range results {
		allResults = append(allResults, result)
		if database != nil {
			recordHistory(database, opts, result, logger)
		}
	}

	run := BuildRunSummary(allResults, time.Since(startTime).Seconds())

	var out []byte
	if c.String("format") == "json" {
		out, err = json.MarshalIndent(run, "", "  ")
	} else {
		out, err = yaml.Marshal(run)
	}
	if err != nil {
		logger.Error("failed to marshal run summary", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(out))

	if run.Stats.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

func parseOptions(c *cli.Context) (Options, error) {
	opts := Options{
		Size:         c.Int("size"),
		DefaultImage: c.String("default-image"),
		OutputDir:    c.String("output-dir"),
	}

	for _, kind := range strings.Split(c.String("assets"), ",") {
		switch strings.TrimSpace(strings.ToLower(kind)) {
		case "icon":
			opts.WantIcon = true
		case "social", "image":
			opts.WantImage = true
		case "":
		default:
			return opts, fmt.Errorf("unknown asset kind %q (want icon, social)", kind)
		}
	}
	if !opts.WantIcon && !opts.WantImage {
		opts.WantIcon = true
	}
	return opts, nil
}

// recordHistory writes one row per requested asset class.
func recordHistory(database *db.DB, opts Options, r Result, logger *slog.Logger) {
	if r.Res == nil {
		return
	}

	record := func(kind string, asset *models.ResolvedAsset) {
		row := db.Resolution{
			RequestID:  r.Res.RequestID,
			URL:        r.URL,
			FinalURL:   r.Res.FinalURL,
			AssetKind:  kind,
			TimedOut:   r.Res.TimedOut,
			DurationMS: r.Res.Duration.Milliseconds(),
		}
		if asset != nil {
			row.Status = "success"
			row.SourceTag = string(asset.Source)
			row.Score = asset.Score
			row.Format = asset.Format
			row.ByteSize = int64(len(asset.Bytes))
			row.IsFallback = asset.IsFallback
		} else {
			row.Status = "failed"
			row.ErrorType = errorType(r.Err)
		}
		if _, err := database.InsertResolution(row); err != nil {
			logger.Warn("failed to record resolution history", "url", r.URL, "error", err)
		}
	}

	if opts.WantIcon {
		record("icon", r.Res.Icon)
	}
	if opts.WantImage {
		record("image", r.Res.Image)
	}
}

// HistoryAction prints recent resolution history, or aggregate source stats
// with --stats.
func HistoryAction(c *cli.Context) error {
	database, err := db.Open()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer database.Close()

	if c.Bool("stats") {
		stats, err := database.SourceStats()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(map[string]any{"sources": stats})
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	rows, err := database.RecentResolutions(c.Int("limit"))
	if err != nil {
		return err
	}

	type historyEntry struct {
		URL        string `yaml:"url"`
		AssetKind  string `yaml:"asset_kind"`
		Status     string `yaml:"status"`
		Source     string `yaml:"source,omitempty"`
		Format     string `yaml:"format,omitempty"`
		Fallback   bool   `yaml:"fallback,omitempty"`
		TimedOut   bool   `yaml:"timed_out,omitempty"`
		ErrorType  string `yaml:"error_type,omitempty"`
		DurationMS int64  `yaml:"duration_ms"`
		CreatedAt  string `yaml:"created_at"`
	}

	entries := make([]historyEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, historyEntry{
			URL:        r.URL,
			AssetKind:  r.AssetKind,
			Status:     r.Status,
			Source:     r.SourceTag,
			Format:     r.Format,
			Fallback:   r.IsFallback,
			TimedOut:   r.TimedOut,
			ErrorType:  r.ErrorType,
			DurationMS: r.DurationMS,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}

	out, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
