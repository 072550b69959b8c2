package glyphrun

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/gogpu/glyphrun/internal/parallel"
	"github.com/gogpu/glyphrun/text"
)

// Pipeline lays out strings against fallback chains of fonts: grapheme
// clustering, font selection, bidi resolution, shaping and assembly.
// Configuration is fixed at construction.
//
// Pipeline is safe for concurrent use. Each Layout call is independent.
type Pipeline struct {
	reg   *text.Registry
	cfg   config
	pool  *parallel.WorkerPool
	paths *PathCache

	mu     sync.RWMutex
	closed bool
}

// New creates a pipeline. reg resolves font names for LayoutNames and may
// be nil when only Layout is used. New fails on a malformed language tag
// or feature.
func New(reg *text.Registry, opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tag, err := language.Parse(cfg.language)
	if err != nil {
		return nil, fmt.Errorf("glyphrun: language %q: %w", cfg.language, err)
	}
	cfg.language = tag.String()
	for _, f := range cfg.features {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("glyphrun: %w", err)
		}
	}

	p := &Pipeline{reg: reg, cfg: cfg}
	if cfg.workers != 0 {
		p.pool = parallel.NewWorkerPool(max(cfg.workers, 0))
	}
	if cfg.pathCache > 0 {
		p.paths = NewPathCache(cfg.pathCache)
	}
	return p, nil
}

// Close releases the worker pool once in-flight Layout and Paths calls
// have returned. The registry is owned by the caller and is not closed.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// LayoutNames builds a chain of faces at size from the registry and lays
// s out with it.
func (p *Pipeline) LayoutNames(s string, size float64, names ...string) (*LayoutResult, error) {
	if p.reg == nil {
		return nil, fmt.Errorf("glyphrun: no registry: %w", text.ErrUnknownFont)
	}
	chain, err := p.reg.Chain(size, names)
	if err != nil {
		return nil, err
	}
	return p.Layout(s, chain)
}

// Layout lays s out with chain, whose first candidate is the primary font.
//
// An empty string yields an empty result. If a run fails with an engine
// error, Layout returns the runs assembled before it in visual order
// together with a *RunError; runs that produce no glyphs with any
// candidate are drawn as placeholders and do not fail the layout.
func (p *Pipeline) Layout(s string, chain []text.FontCandidate) (*LayoutResult, error) {
	// Close waits for the read lock, so the pool outlives the shaping below.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrPipelineClosed
	}
	if len(chain) == 0 {
		return nil, text.ErrEmptyChain
	}
	if p.cfg.normalize {
		s = p.cfg.norm.String(s)
	}

	base := p.cfg.base
	if p.cfg.autoBase {
		base = text.DetectDirection(s)
	}

	result := &LayoutResult{
		Text:      s,
		Strategy:  p.cfg.strategy,
		Direction: base,
		Origin:    p.cfg.origin,
	}

	clusters := text.Clusters(s)
	if len(clusters) == 0 {
		p.setMetrics(result, chain)
		return result, nil
	}

	seg := text.Segmenter{Chain: chain, SplitScripts: true}
	switch p.cfg.strategy {
	case text.StrategyPassThrough:
		for i := range clusters {
			clusters[i].Level = base.Level()
		}
	case text.StrategyPreReorder:
		text.ResolveLevels(s, clusters, base)
		result.Text, clusters = text.ReorderClusters(clusters)
	default:
		text.ResolveLevels(s, clusters, base)
		seg.SplitLevels = true
	}
	runs := seg.Segment(clusters)

	shaped := parallel.Map(p.pool, len(runs), func(i int) shapeResult {
		run, err := p.shapeRun(runs[i], chain)
		return shapeResult{run: run, err: err}
	})

	asm := NewAssembler(p.cfg.origin)
	var runErr error
	for _, i := range p.visualOrder(runs, base) {
		if err := shaped[i].err; err != nil {
			Logger().Warn("run failed", "run", i, "text", runs[i].Text, "err", err)
			runErr = &RunError{Index: i, Run: runs[i], Err: err}
			break
		}
		asm.Add(shaped[i].run)
	}

	result.Runs = asm.Runs()
	result.Glyphs = asm.Glyphs()
	result.Width = asm.Width()
	p.setMetrics(result, chain)

	Logger().Debug("layout",
		"strategy", p.cfg.strategy,
		"direction", base,
		"runs", len(runs),
		"glyphs", len(result.Glyphs),
		"width", result.Width)
	if p.cfg.cache != nil {
		stats := p.cfg.cache.Stats()
		Logger().Debug("shaping cache", "len", stats.Len, "hits", stats.Hits, "misses", stats.Misses)
	}
	return result, runErr
}

type shapeResult struct {
	run *text.ShapedRun
	err error
}

func (p *Pipeline) shapeOptions() text.ShapeOptions {
	return text.ShapeOptions{
		Language: p.cfg.language,
		Features: p.cfg.features,
		Cache:    p.cfg.cache,
	}
}

// shapeRun shapes run with its selected font. When that font produces no
// glyphs, the remaining candidates of the chain are tried in order, and a
// placeholder run is built when all of them fail.
func (p *Pipeline) shapeRun(run text.Run, chain []text.FontCandidate) (*text.ShapedRun, error) {
	opts := p.shapeOptions()
	shaped, err := text.Shape(run.Font, run, opts)
	if err == nil {
		return shaped, nil
	}
	if !errors.Is(err, text.ErrNoGlyphOutput) {
		return nil, err
	}

	for i := run.FontIndex + 1; i < len(chain); i++ {
		Logger().Debug("retrying run with fallback", "text", run.Text, "font", chain[i].Name(), "index", i)
		shaped, err = text.Shape(chain[i], run, opts)
		if err == nil {
			shaped.Run.FontIndex = i
			return shaped, nil
		}
		if !errors.Is(err, text.ErrNoGlyphOutput) {
			return nil, err
		}
	}

	Logger().Warn("no font produced glyphs, using placeholder", "text", run.Text, "candidates", len(chain))
	return p.placeholder(run), nil
}

// placeholder builds one placeholder glyph per cluster of run, using the
// run's font. The placeholder character is shaped once; if that fails
// too, the notdef glyph with a half-em advance is used.
func (p *Pipeline) placeholder(run text.Run) *text.ShapedRun {
	glyph := text.Glyph{ID: text.NotdefGlyph}
	pos := text.GlyphPosition{XAdvance: run.Font.Size() / 2}

	mark := string(p.cfg.placeholder)
	markRun := text.Run{Text: mark, End: len(mark), Font: run.Font, Script: text.DetectScript(mark)}
	if shaped, err := text.Shape(run.Font, markRun, text.ShapeOptions{Language: p.cfg.language}); err == nil && shaped.Len() > 0 {
		glyph.ID = shaped.Glyphs[0].ID
		pos.XAdvance = shaped.Advance
	}

	out := &text.ShapedRun{Run: run, Placeholder: true}
	for _, c := range text.Clusters(run.Text) {
		out.Glyphs = append(out.Glyphs, text.Glyph{ID: glyph.ID, Cluster: run.Start + c.Start})
		out.Positions = append(out.Positions, pos)
		out.Advance += pos.XAdvance
	}
	if run.Direction == text.DirectionRTL {
		slices.Reverse(out.Glyphs)
	}
	return out
}

// visualOrder returns the indices of runs in display order.
func (p *Pipeline) visualOrder(runs []text.Run, base text.Direction) []int {
	switch p.cfg.strategy {
	case text.StrategyPassThrough:
		order := make([]int, len(runs))
		for i := range order {
			order[i] = i
		}
		if base == text.DirectionRTL {
			slices.Reverse(order)
		}
		return order
	case text.StrategyPreReorder:
		order := make([]int, len(runs))
		for i := range order {
			order[i] = i
		}
		return order
	default:
		levels := make([]int, len(runs))
		for i, r := range runs {
			levels[i] = r.Level
		}
		return text.VisualOrder(levels)
	}
}

// setMetrics fills the vertical metrics from the fonts of the assembled
// runs, or from the primary font when nothing was assembled.
func (p *Pipeline) setMetrics(r *LayoutResult, chain []text.FontCandidate) {
	fonts := make([]text.FontCandidate, 0, len(r.Runs)+1)
	for _, run := range r.Runs {
		fonts = append(fonts, run.Run.Font)
	}
	if len(fonts) == 0 {
		fonts = append(fonts, chain[0])
	}
	var lineGap float64
	for _, f := range fonts {
		m := f.Metrics()
		r.Ascent = max(r.Ascent, m.Ascent)
		r.Descent = max(r.Descent, m.Descent)
		lineGap = max(lineGap, m.LineGap)
	}
	r.Height = r.Ascent + r.Descent + lineGap
}

// Paths converts the glyphs of result into filled paths, on the worker
// pool when one is configured and through the path cache when enabled.
// Glyph order is preserved and glyphs without outlines are skipped.
func (p *Pipeline) Paths(result *LayoutResult, paint RGBA) ([]GlyphFill, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrPipelineClosed
	}
	convert := GlyphPath
	if p.paths != nil {
		convert = p.paths.GlyphPath
	}
	return glyphFills(result.Glyphs, paint, p.pool, convert)
}
