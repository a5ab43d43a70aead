package resolve

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dtnitsch/page-visuals/pkg/pipeline"
	"github.com/dtnitsch/page-visuals/pkg/storage"
)

// Options carries the per-run settings shared by all workers.
type Options struct {
	WantIcon     bool
	WantImage    bool
	Size         int
	DefaultImage string
	OutputDir    string
}

// worker processes jobs from the jobs channel and sends results to the
// results channel. Each job is one full pipeline run.
func worker(id int, engine *pipeline.Engine, store *storage.Storage, opts Options,
	logger *slog.Logger, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()

	for job := range jobs {
		logger.Info("worker started job", "worker", id, "url", job.URL)

		res, err := engine.Resolve(context.Background(), pipeline.Request{
			URL:          job.URL,
			WantIcon:     opts.WantIcon,
			WantImage:    opts.WantImage,
			Size:         opts.Size,
			DefaultImage: opts.DefaultImage,
		})

		result := Result{URL: job.URL, Res: res, Err: err}

		if opts.OutputDir != "" && res != nil {
			if res.Icon != nil {
				path, serr := store.SaveAsset(opts.OutputDir, job.URL, "icon", res.Icon)
				if serr != nil {
					logger.Error("failed to save icon", "worker", id, "url", job.URL, "error", serr)
				} else {
					result.IconPath = path
				}
			}
			if res.Image != nil {
				path, serr := store.SaveAsset(opts.OutputDir, job.URL, "image", res.Image)
				if serr != nil {
					logger.Error("failed to save image", "worker", id, "url", job.URL, "error", serr)
				} else {
					result.ImagePath = path
				}
			}
		}

		if err != nil {
			logger.Warn("worker job failed", "worker", id, "url", job.URL, "error", err)
		} else {
			logger.Info("worker finished job", "worker", id, "url", job.URL)
		}
		results <- result
	}
}
