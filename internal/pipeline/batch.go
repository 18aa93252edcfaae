package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vision-tools/cocoviz/internal/render"
)

// Outcome records what happened to a single image during a run.
// Exactly one of Result and Err is set.
type Outcome struct {
	// ImagePath is the source image.
	ImagePath string

	// OutputPath is where the rendered image was (or would have been) written.
	OutputPath string

	// Result is the renderer's result for the image.
	Result *render.Result

	// Err is the failure that stopped this image, when one occurred.
	Err error
}

// Processor fans a directory tree of images out across a fixed set of
// render workers. It is safe for a single Process call at a time.
type Processor struct {
	renderer *render.Renderer
	workers  int
	logger   *slog.Logger

	dirRetries    int
	dirRetryDelay time.Duration
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the number of render workers. Zero or negative keeps
// the automatic default of half the CPU count.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger for run-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithDirRetry overrides the directory creation retry policy.
func WithDirRetry(retries int, delay time.Duration) Option {
	return func(p *Processor) {
		if retries > 0 {
			p.dirRetries = retries
		}
		if delay >= 0 {
			p.dirRetryDelay = delay
		}
	}
}

// New creates a Processor around an already configured renderer.
func New(renderer *render.Renderer, opts ...Option) *Processor {
	p := &Processor{
		renderer:      renderer,
		workers:       autoWorkers(),
		dirRetries:    DefaultDirRetries,
		dirRetryDelay: DefaultDirRetryDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Workers returns the configured worker count.
func (p *Processor) Workers() int { return p.workers }

// autoWorkers picks half the available CPUs, never less than one.
func autoWorkers() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// Process renders every image under inputRoot into a mirrored directory
// layout under outputRoot. Directories are processed in order; within a
// directory the image list is split into contiguous shards, one per
// worker, so outcomes come back in discovery order.
//
// In strict mode the first failure, whether a render error or a
// directory-level one, is returned after the current directory's workers
// drain. In lenient mode render failures are recorded in the outcomes, a
// directory that cannot be read or mirrored is recorded as failed
// outcomes for its images, and the run continues.
func (p *Processor) Process(ctx context.Context, inputRoot, outputRoot string) ([]Outcome, error) {
	dirs, err := Subdirectories(inputRoot)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	p.logger.Info("starting bulk render",
		"input", inputRoot,
		"output", outputRoot,
		"directories", len(dirs),
		"workers", p.workers,
	)

	var all []Outcome
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		outcomes, err := p.processDir(ctx, dir, inputRoot, outputRoot)
		all = append(all, outcomes...)
		if err != nil {
			return all, err
		}
	}

	p.logger.Info("bulk render complete",
		"images", len(all),
		"elapsed", time.Since(started),
	)
	return all, nil
}

// processDir renders the images directly inside dir into its mirror under
// outputRoot. Directory-level failures stop the run only in strict mode;
// lenient mode records them and lets the remaining directories proceed.
func (p *Processor) processDir(ctx context.Context, dir, inputRoot, outputRoot string) ([]Outcome, error) {
	images, err := DiscoverImages(dir)
	if err != nil {
		if p.renderer.Strict() {
			return nil, err
		}
		p.logger.Warn("cannot read directory, skipping", "dir", dir, "error", err)
		return nil, nil
	}
	if len(images) == 0 {
		return nil, nil
	}

	rel, err := filepath.Rel(inputRoot, dir)
	if err != nil {
		if p.renderer.Strict() {
			return nil, err
		}
		p.logger.Warn("cannot resolve directory mirror, skipping", "dir", dir, "error", err)
		return nil, nil
	}
	outDir := filepath.Join(outputRoot, rel)
	if err := EnsureDir(outDir, p.dirRetries, p.dirRetryDelay, p.logger); err != nil {
		if p.renderer.Strict() {
			return nil, err
		}
		p.logger.Warn("cannot create output directory, failing its images", "dir", dir, "error", err)
		outcomes := make([]Outcome, len(images))
		for i, img := range images {
			outcomes[i] = Outcome{
				ImagePath:  img,
				OutputPath: filepath.Join(outDir, filepath.Base(img)),
				Err:        err,
			}
		}
		return outcomes, nil
	}

	p.logger.Info("processing directory", "dir", dir, "images", len(images))

	workers := p.workers
	if workers > len(images) {
		workers = len(images)
	}

	outcomes := make([]Outcome, len(images))

	// a plain group keeps the remaining shards running after a strict
	// failure, so every started image reaches a recorded outcome
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start, end := shardBounds(len(images), workers, w)
		g.Go(func() error {
			return p.processShard(ctx, images[start:end], outDir, outcomes[start:end])
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// processShard renders its slice of images sequentially, writing into the
// matching slice of outcomes.
func (p *Processor) processShard(ctx context.Context, images []string, outDir string, outcomes []Outcome) error {
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return err
		}

		outPath := filepath.Join(outDir, filepath.Base(img))
		res, err := p.renderer.Render(ctx, img, outPath)
		outcomes[i] = Outcome{ImagePath: img, OutputPath: outPath, Result: res, Err: err}

		if err != nil {
			if p.renderer.Strict() {
				return err
			}
			p.logger.Warn("render failed", "file", img, "error", err)
		}
	}
	return nil
}

// shardBounds returns the half-open range of the w-th contiguous shard
// when n items are split across workers shards. The last shard takes the
// remainder.
func shardBounds(n, workers, w int) (start, end int) {
	chunk := n / workers
	start = w * chunk
	end = start + chunk
	if w == workers-1 {
		end = n
	}
	return start, end
}
