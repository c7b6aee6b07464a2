package lottieconv

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/vleushin/lottie-converter/decoder"
	"github.com/vleushin/lottie-converter/raster"
	"github.com/vleushin/lottie-converter/sample"
)

// frameIndexWidth is the nominal zero-padded width of frame file names
// ("000.png" through "999.png"). Sequences longer than 1000 frames grow
// to four or more digits instead of truncating, keeping names unique at
// the cost of uneven padding; downstream assembly sorts numerically.
const frameIndexWidth = 3

// frameName returns the file name for output frame j.
func frameName(j int) string {
	return fmt.Sprintf("%0*d.png", frameIndexWidth, j)
}

// Convert renders the animation in src to a sequence of PNG frames in
// opts.OutputDir, one file per sampled output frame.
//
// Convert probes the animation once for its frame count and rate, derives
// the sampling parameters, then renders frames across a pool of workers.
// Worker i of N renders output frames i, i+N, i+2N, … — the interleaving
// balances load even when rendering cost varies with frame position. Each
// worker opens its own decoder handle from the same source bytes and
// cache key and owns one reusable render surface.
//
// Convert blocks until every worker has finished. On success all frame
// files are on disk; on any failure (including ctx cancellation between
// frames) the conversion as a whole is failed and the frames already
// written should be discarded by the caller. There is no partial success.
func Convert(ctx context.Context, src []byte, opts Options) error {
	norm, err := opts.normalize()
	if err != nil {
		return err
	}

	c := &conversion{src: src, opts: norm}

	// Probe once for the source geometry; a malformed animation fails
	// here, before any worker starts.
	probe, err := c.open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAnimationLoad, err)
	}
	frames, rate := probe.TotalFrames(), probe.FrameRate()
	if cerr := probe.Close(); cerr != nil {
		return fmt.Errorf("%w: %w", ErrAnimationLoad, cerr)
	}

	c.params, err = sample.New(frames, rate, norm.FPS)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAnimationLoad, err)
	}

	c.workers = norm.Workers
	if c.workers == 0 {
		c.workers = runtime.NumCPU()
	}

	Logger().Info("conversion started",
		"source_frames", frames,
		"source_fps", rate,
		"output_frames", c.params.FrameCount,
		"output_fps", c.params.OutputRate,
		"workers", c.workers,
	)

	errs := make([]error, c.workers)
	var wg sync.WaitGroup
	wg.Add(c.workers)
	for i := 0; i < c.workers; i++ {
		go func(worker int) {
			defer wg.Done()
			errs[worker] = c.run(ctx, worker)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	Logger().Info("conversion finished", "frames", c.params.FrameCount)
	return nil
}

// conversion holds the state shared by all workers of one Convert call.
// Everything here is read-only once the workers start.
type conversion struct {
	src     []byte
	opts    normalized
	params  sample.Params
	workers int
}

// open opens a decoder handle on the conversion's source bytes. The probe
// and every worker go through here, so all handles share the same cache
// key and the same backend selection.
func (c *conversion) open() (decoder.Animation, error) {
	if c.opts.Decoder != "" {
		return decoder.OpenWith(c.opts.Decoder, c.src, c.opts.CacheKey)
	}
	return decoder.Open(c.src, c.opts.CacheKey)
}

// run is one worker's frame loop: open a handle, allocate a surface, then
// sample, render, flatten and encode every frame of the worker's strided
// partition.
func (c *conversion) run(ctx context.Context, worker int) error {
	anim, err := c.open()
	if err != nil {
		return fmt.Errorf("%w: worker %d: %w", ErrAnimationLoad, worker, err)
	}
	defer func() { _ = anim.Close() }()

	ss := c.opts.Supersample
	surf, err := raster.NewSurface(c.opts.Width*ss, c.opts.Height*ss)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceAlloc, err)
	}

	// With supersampling the render surface is larger than the output;
	// frames are reduced into a second per-worker surface after
	// flattening.
	out := surf
	if ss > 1 {
		out, err = raster.NewSurface(c.opts.Width, c.opts.Height)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSurfaceAlloc, err)
		}
	}

	log := Logger().With("worker", worker)
	for j := worker; j < c.params.FrameCount; j += c.workers {
		if err := ctx.Err(); err != nil {
			return err
		}

		srcFrame := c.params.SourceFrame(j)
		if err := anim.RenderSync(srcFrame, surf); err != nil {
			return fmt.Errorf("lottieconv: render frame %d: %w", j, err)
		}
		raster.Flatten(surf, c.opts.bg)
		if ss > 1 {
			raster.Downscale(out, surf)
		}

		path := filepath.Join(c.opts.OutputDir, frameName(j))
		if err := raster.SavePNG(path, out); err != nil {
			return fmt.Errorf("%w: frame %d: %w", ErrEncode, j, err)
		}
		log.Debug("frame written", "frame", j, "source_frame", srcFrame, "path", path)
	}
	return nil
}
