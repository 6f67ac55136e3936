package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/astscope/pkg/cache"
	"github.com/matzehuels/astscope/pkg/catalog"
	"github.com/matzehuels/astscope/pkg/cfg"
	"github.com/matzehuels/astscope/pkg/convert"
	"github.com/matzehuels/astscope/pkg/graph"
	"github.com/matzehuels/astscope/pkg/printer"
	"github.com/matzehuels/astscope/pkg/render/dot"
	"github.com/matzehuels/astscope/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means the default keyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete parse → convert → render pipeline.
//
// Parse failures are returned unconverted, as coded errors whose
// message carries the parser's own diagnostics.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	cat, err := opts.Catalog()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts:  make(map[string][]byte),
		SourceHash: cache.Hash([]byte(opts.Source)),
	}

	// Stage 1+2: parse and convert (cached as one unit; both are
	// deterministic in the source and mode)
	convertStart := time.Now()
	g, graphHit, err := r.ConvertWithCacheInfo(ctx, cat, opts, result.SourceHash)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ConvertTime = time.Since(convertStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.GraphHit = graphHit

	r.Logger.Info("converted source",
		"mode", opts.Mode,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ConvertTime)

	result.DOT = dot.ToDOT(g, dot.Options{Title: opts.Title, RankDir: opts.RankDir})

	// Stage 3: render requested formats
	renderStart := time.Now()
	renderHit, err := r.renderFormats(ctx, cat, opts, result)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ConvertWithCacheInfo produces the graph artifact with caching and
// reports whether it came from cache.
func (r *Runner) ConvertWithCacheInfo(ctx context.Context, cat *catalog.Catalog, opts Options, sourceHash string) (graph.Graph, bool, error) {
	cacheKey := r.Keyer.GraphKey(sourceHash, cache.GraphKeyOpts{
		Mode:    opts.Mode,
		Catalog: cat.Fingerprint(),
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.Unmarshal(data); err == nil {
				return g, true, nil
			}
			// Corrupt entry: fall through to recompute
		}
	}

	g, err := Convert(cat, opts)
	if err != nil {
		return graph.Graph{}, false, err
	}

	if data, err := graph.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
	}

	return g, false, nil
}

// Convert parses the source and converts it to the graph artifact,
// without caching.
func Convert(cat *catalog.Catalog, opts Options) (graph.Graph, error) {
	switch opts.Mode {
	case ModeCFG:
		flow, err := cfg.FromSource(opts.Source)
		if err != nil {
			return graph.Graph{}, err
		}
		return cfg.Render(flow), nil
	default:
		t, err := tree.FromSource(opts.Source)
		if err != nil {
			return graph.Graph{}, err
		}
		return convert.New(cat).Convert(t), nil
	}
}

// renderFormats fills result.Artifacts for every requested format.
// Returns true when every format was served from cache.
func (r *Runner) renderFormats(ctx context.Context, cat *catalog.Catalog, opts Options, result *Result) (bool, error) {
	dotHash := cache.Hash([]byte(result.DOT))
	allCached := true

	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			result.Artifacts[format] = []byte(result.DOT)
			allCached = false

		case FormatJSON:
			data, err := graph.Marshal(result.Graph)
			if err != nil {
				return false, err
			}
			result.Artifacts[format] = data
			allCached = false

		case FormatText:
			data, hit, err := r.renderText(ctx, cat, opts, result.SourceHash)
			if err != nil {
				return false, err
			}
			result.Artifacts[format] = data
			allCached = allCached && hit

		default: // svg, png
			data, hit, err := r.renderImage(ctx, opts, result.DOT, dotHash, format)
			if err != nil {
				return false, err
			}
			result.Artifacts[format] = data
			allCached = allCached && hit
		}
	}
	return allCached, nil
}

// renderImage renders DOT to svg/png with caching.
func (r *Runner) renderImage(ctx context.Context, opts Options, dotSrc, dotHash, format string) ([]byte, bool, error) {
	cacheKey := r.Keyer.ArtifactKey(dotHash, cache.ArtifactKeyOpts{
		Format:  format,
		RankDir: opts.RankDir,
		Title:   opts.Title,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			return data, true, nil
		}
	}

	var data []byte
	var err error
	switch format {
	case FormatPNG:
		data, err = dot.RenderPNG(ctx, dotSrc)
	default:
		data, err = dot.RenderSVG(ctx, dotSrc)
	}
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	return data, false, nil
}

// renderText pretty-prints the tree with caching.
// Only reached in ast mode; validation rejects text output for cfg.
func (r *Runner) renderText(ctx context.Context, cat *catalog.Catalog, opts Options, sourceHash string) ([]byte, bool, error) {
	cacheKey := r.Keyer.TextKey(sourceHash, cache.TextKeyOpts{
		ShowExplanations: opts.ShowExplanations,
		Plain:            opts.Plain,
		Catalog:          cat.Fingerprint(),
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			return data, true, nil
		}
	}

	t, err := tree.FromSource(opts.Source)
	if err != nil {
		return nil, false, err
	}
	text := printer.Print(t, printer.Options{
		ShowExplanations: opts.ShowExplanations,
		Plain:            opts.Plain,
		Catalog:          cat,
	})

	data := []byte(text)
	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLText)
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
