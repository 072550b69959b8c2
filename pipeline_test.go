package glyphrun

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphrun/text"
)

func TestLayoutHelloWorld(t *testing.T) {
	p := newPipeline(t, WithOrigin(Pt(5, 30)))
	face := goRegular(t)

	result, err := p.Layout("hello, world", []text.FontCandidate{face})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if len(result.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(result.Runs))
	}
	run := result.Runs[0]
	if run.Run.IsFallback() {
		t.Error("run should use the primary font")
	}
	if len(result.Glyphs) != 12 {
		t.Fatalf("glyphs = %d, want 12", len(result.Glyphs))
	}
	if run.Positions[0].XOffset != 0 || result.Glyphs[0].X != 5 {
		t.Errorf("first glyph at x=%v (offset %v), want 5 (offset 0)", result.Glyphs[0].X, run.Positions[0].XOffset)
	}
	if math.Abs(result.Width-run.Advance) > 1e-4 {
		t.Errorf("Width = %v, run advance = %v", result.Width, run.Advance)
	}
	last := result.Glyphs[len(result.Glyphs)-1]
	if math.Abs(last.X+last.Advance-(5+result.Width)) > 1e-4 {
		t.Errorf("last glyph ends at %v, want %v", last.X+last.Advance, 5+result.Width)
	}
	if result.Direction != text.DirectionLTR || result.Strategy != text.StrategyItemize {
		t.Errorf("direction/strategy = %v/%v", result.Direction, result.Strategy)
	}
	if result.Ascent <= 0 || result.Descent <= 0 || result.Height < result.Ascent+result.Descent {
		t.Errorf("metrics = ascent %v descent %v height %v", result.Ascent, result.Descent, result.Height)
	}
}

func TestLayoutFallbackRuns(t *testing.T) {
	p := newPipeline(t)
	emoji := newFakeFont(9, "emoji", "😀")
	chain := []text.FontCandidate{goRegular(t), emoji}

	tests := []struct {
		name      string
		text      string
		wantRuns  []string
		wantFonts []int
	}{
		{"primary only", "hello", []string{"hello"}, []int{0}},
		{"word then emoji", "hello😀", []string{"hello", "😀"}, []int{0, 1}},
		{"capability reverts", "hi😀there", []string{"hi", "😀", "there"}, []int{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Layout(tt.text, chain)
			if err != nil {
				t.Fatalf("Layout failed: %v", err)
			}
			texts := visualRunTexts(result)
			if diff := cmp.Diff(tt.wantRuns, texts); diff != "" {
				t.Errorf("runs mismatch (-want +got):\n%s", diff)
			}
			fonts := make([]int, len(result.Runs))
			for i, r := range result.Runs {
				fonts[i] = r.Run.FontIndex
			}
			if diff := cmp.Diff(tt.wantFonts, fonts); diff != "" {
				t.Errorf("font indices mismatch (-want +got):\n%s", diff)
			}
			if joined(texts) != tt.text {
				t.Errorf("runs join to %q, want %q", joined(texts), tt.text)
			}
		})
	}
}

func TestLayoutBidiStrategies(t *testing.T) {
	font := newFakeFont(1, "both", latinRunes+hebrewRunes)
	chain := []text.FontCandidate{font}

	tests := []struct {
		name         string
		opts         []Option
		text         string
		wantText     string
		wantDir      text.Direction
		wantRuns     []string
		wantClusters []int
	}{
		{
			name:         "itemize ltr paragraph",
			opts:         []Option{WithBaseDirection(text.DirectionLTR)},
			text:         "abc אבג",
			wantText:     "abc אבג",
			wantDir:      text.DirectionLTR,
			wantRuns:     []string{"abc ", "אבג"},
			wantClusters: []int{0, 1, 2, 3, 8, 6, 4},
		},
		{
			name:         "itemize auto rtl paragraph",
			text:         "אב cd",
			wantText:     "אב cd",
			wantDir:      text.DirectionRTL,
			wantRuns:     []string{"cd", "אב "},
			wantClusters: []int{5, 6, 4, 2, 0},
		},
		{
			name:         "itemize numbers between rtl words",
			opts:         []Option{WithBaseDirection(text.DirectionLTR)},
			text:         "ab אבג 123 דהו cd",
			wantText:     "ab אבג 123 דהו cd",
			wantDir:      text.DirectionLTR,
			wantRuns:     []string{"ab ", " דהו", "123", "אבג ", " ", "cd"},
			wantClusters: []int{0, 1, 2, 18, 16, 14, 13, 10, 11, 12, 9, 7, 5, 3, 20, 21, 22},
		},
		{
			name:         "pass-through rtl",
			opts:         []Option{WithStrategy(text.StrategyPassThrough), WithBaseDirection(text.DirectionRTL)},
			text:         "אב cd",
			wantText:     "אב cd",
			wantDir:      text.DirectionRTL,
			wantRuns:     []string{"cd", "אב "},
			wantClusters: []int{6, 5, 4, 2, 0},
		},
		{
			name:         "pre-reorder pure ltr is a no-op",
			opts:         []Option{WithStrategy(text.StrategyPreReorder)},
			text:         "hello",
			wantText:     "hello",
			wantDir:      text.DirectionLTR,
			wantRuns:     []string{"hello"},
			wantClusters: []int{0, 1, 2, 3, 4},
		},
		{
			name:         "pre-reorder mixed",
			opts:         []Option{WithStrategy(text.StrategyPreReorder), WithBaseDirection(text.DirectionLTR)},
			text:         "ab אב",
			wantText:     "ab בא",
			wantDir:      text.DirectionLTR,
			wantRuns:     []string{"ab ", "בא"},
			wantClusters: []int{0, 1, 2, 3, 5},
		},
		{
			name:         "pre-reorder numbers between rtl words",
			opts:         []Option{WithStrategy(text.StrategyPreReorder), WithBaseDirection(text.DirectionLTR)},
			text:         "ab אבג 123 דהו cd",
			wantText:     "ab והד 123 גבא cd",
			wantDir:      text.DirectionLTR,
			wantRuns:     []string{"ab ", "והד 123 גבא ", "cd"},
			wantClusters: []int{0, 1, 2, 3, 5, 7, 9, 10, 11, 12, 13, 14, 16, 18, 20, 21, 22},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t, tt.opts...)
			result, err := p.Layout(tt.text, chain)
			if err != nil {
				t.Fatalf("Layout failed: %v", err)
			}
			if result.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", result.Text, tt.wantText)
			}
			if result.Direction != tt.wantDir {
				t.Errorf("Direction = %v, want %v", result.Direction, tt.wantDir)
			}
			if diff := cmp.Diff(tt.wantRuns, visualRunTexts(result)); diff != "" {
				t.Errorf("visual runs mismatch (-want +got):\n%s", diff)
			}
			clusters := make([]int, len(result.Glyphs))
			for i, g := range result.Glyphs {
				clusters[i] = g.Cluster
				if want := float64(i) * 10; g.X != want {
					t.Errorf("glyph %d X = %v, want %v", i, g.X, want)
				}
			}
			if diff := cmp.Diff(tt.wantClusters, clusters); diff != "" {
				t.Errorf("glyph clusters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// displayed returns the characters of result in the order their glyphs
// are drawn, one per glyph.
func displayed(result *LayoutResult) string {
	var out []rune
	for _, g := range result.Glyphs {
		r, _ := utf8.DecodeRuneInString(result.Text[g.Cluster:])
		out = append(out, r)
	}
	return string(out)
}

func TestLayoutNumbersInsideRTL(t *testing.T) {
	chain := []text.FontCandidate{newFakeFont(1, "both", latinRunes+hebrewRunes)}
	const want = "ab והד 123 גבא cd"

	for _, strategy := range []text.Strategy{text.StrategyItemize, text.StrategyPreReorder} {
		t.Run(strategy.String(), func(t *testing.T) {
			p := newPipeline(t, WithStrategy(strategy), WithBaseDirection(text.DirectionLTR))
			result, err := p.Layout("ab אבג 123 דהו cd", chain)
			if err != nil {
				t.Fatalf("Layout failed: %v", err)
			}
			if got := displayed(result); got != want {
				t.Errorf("displayed = %q, want %q", got, want)
			}
		})
	}
}

func TestLayoutMirrorPlacement(t *testing.T) {
	p := newPipeline(t)
	font := newFakeFont(1, "hebrew", hebrewRunes)

	result, err := p.Layout("אבג", []text.FontCandidate{font})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if result.Direction != text.DirectionRTL {
		t.Fatalf("Direction = %v, want RTL", result.Direction)
	}

	var last PositionedGlyph
	for _, g := range result.Glyphs {
		if g.Cluster >= last.Cluster {
			last = g
		}
	}

	anchor := Pt(100, 50)
	m := result.PlacementTransform(anchor, AlignMirror)
	left := m.TransformPoint(Pt(last.X, last.Y))
	right := m.TransformPoint(Pt(last.X+last.Advance, last.Y))
	if edge := max(left.X, right.X); math.Abs(edge-anchor.X) > 1e-4 {
		t.Errorf("last logical glyph's right edge at %v, want %v", edge, anchor.X)
	}
	if !m.IsMirrored() {
		t.Error("mirror transform does not flip")
	}
	if got := m.TransformPoint(Pt(result.Width, 0)); math.Abs(got.X-(anchor.X-result.Width)) > 1e-4 {
		t.Errorf("block left edge at %v, want %v", got.X, anchor.X-result.Width)
	}
}

func TestPlacementTransform(t *testing.T) {
	r := &LayoutResult{Origin: Pt(5, 10), Width: 40}
	anchor := Pt(200, 80)

	tests := []struct {
		align Align
		in    Point
		want  Point
	}{
		{AlignLeft, Pt(5, 10), Pt(200, 80)},
		{AlignLeft, Pt(45, 12), Pt(240, 82)},
		{AlignRight, Pt(45, 10), Pt(200, 80)},
		{AlignRight, Pt(5, 10), Pt(160, 80)},
		{AlignMirror, Pt(5, 10), Pt(200, 80)},
		{AlignMirror, Pt(45, 10), Pt(160, 80)},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			got := r.PlacementTransform(anchor, tt.align).TransformPoint(tt.in)
			if !approxPoint(got, tt.want) {
				t.Errorf("%v maps %v to %v, want %v", tt.align, tt.in, got, tt.want)
			}
		})
	}
}

func TestLayoutFallbackRetry(t *testing.T) {
	liar := newFakeFont(1, "liar", "x")
	liar.silent = true
	good := newFakeFont(2, "good", "x")

	p := newPipeline(t)
	result, err := p.Layout("x", []text.FontCandidate{liar, good})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	run := result.Runs[0]
	if run.Run.FontIndex != 1 || run.Run.Font.Name() != "good" || run.Placeholder {
		t.Errorf("run font = %q (index %d, placeholder %v), want good retry", run.Run.Font.Name(), run.Run.FontIndex, run.Placeholder)
	}
}

func TestLayoutPlaceholder(t *testing.T) {
	liar := newFakeFont(1, "liar", "x")
	liar.silent = true

	p := newPipeline(t)
	result, err := p.Layout("xx", []text.FontCandidate{liar})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if len(result.Runs) != 1 || !result.Runs[0].Placeholder {
		t.Fatalf("want one placeholder run, got %+v", result.Runs)
	}
	for i, g := range result.Glyphs {
		if g.ID != text.NotdefGlyph || g.Cluster != i {
			t.Errorf("glyph %d = id %d cluster %d, want notdef at %d", i, g.ID, g.Cluster, i)
		}
	}
	if result.Width != 20 {
		t.Errorf("Width = %v, want 20 (two half-em placeholders)", result.Width)
	}
}

func TestLayoutEngineErrorReturnsPrefix(t *testing.T) {
	latin := newFakeFont(1, "latin", latinRunes)
	broken := newFakeFont(2, "emoji", "😀")
	failure := errors.New("scale failure")
	broken.err = failure

	p := newPipeline(t)
	result, err := p.Layout("ab😀cd", []text.FontCandidate{latin, broken})

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("err = %v, want *RunError", err)
	}
	if runErr.Index != 1 || runErr.Run.Text != "😀" {
		t.Errorf("RunError = index %d text %q, want 1 %q", runErr.Index, runErr.Run.Text, "😀")
	}
	if !errors.Is(err, failure) {
		t.Errorf("err does not wrap the engine failure: %v", err)
	}
	var engineErr *text.EngineError
	if !errors.As(err, &engineErr) {
		t.Errorf("err does not wrap *text.EngineError: %v", err)
	}
	if result == nil {
		t.Fatal("no partial result returned")
	}
	if diff := cmp.Diff([]string{"ab"}, visualRunTexts(result)); diff != "" {
		t.Errorf("partial runs mismatch (-want +got):\n%s", diff)
	}
	if result.Width != 20 {
		t.Errorf("partial Width = %v, want 20", result.Width)
	}
}

func TestLayoutEmptyAndInvalid(t *testing.T) {
	p := newPipeline(t)
	font := newFakeFont(1, "f", latinRunes)

	result, err := p.Layout("", []text.FontCandidate{font})
	if err != nil {
		t.Fatalf("Layout(\"\") failed: %v", err)
	}
	if len(result.Runs) != 0 || len(result.Glyphs) != 0 || result.Width != 0 {
		t.Errorf("empty layout = %+v", result)
	}
	if result.Ascent != 16 || result.Descent != 4 {
		t.Errorf("empty layout metrics = %v/%v, want primary font's 16/4", result.Ascent, result.Descent)
	}

	if _, err := p.Layout("abc", nil); !errors.Is(err, text.ErrEmptyChain) {
		t.Errorf("Layout with no chain err = %v, want ErrEmptyChain", err)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := p.Layout("abc", []text.FontCandidate{font}); !errors.Is(err, ErrPipelineClosed) {
		t.Errorf("Layout after Close err = %v, want ErrPipelineClosed", err)
	}
}

func TestNewValidatesOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{"defaults", nil, false},
		{"language", []Option{WithLanguage("ar-EG")}, false},
		{"bad language", []Option{WithLanguage("not a tag!!")}, true},
		{"features", []Option{WithFeatures(text.Feature{Tag: "liga", Value: 0})}, false},
		{"bad feature", []Option{WithFeatures(text.Feature{Tag: "ligatures"})}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(nil, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New err = %v, wantErr %v", err, tt.wantErr)
			}
			if p != nil {
				_ = p.Close()
			}
		})
	}
}

func TestLayoutNormalization(t *testing.T) {
	p := newPipeline(t, WithNormalization(norm.NFC))
	result, err := p.Layout("e\u0301", []text.FontCandidate{goRegular(t)})
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if result.Text != "\u00e9" {
		t.Errorf("Text = %q, want NFC %q", result.Text, "\u00e9")
	}
	if len(result.Glyphs) != 1 {
		t.Errorf("glyphs = %d, want 1", len(result.Glyphs))
	}
}

func TestLayoutParallelMatchesSequential(t *testing.T) {
	chain := []text.FontCandidate{goRegular(t), newFakeFont(9, "emoji", "😀")}
	const s = "hello 😀 world 😀 again 😀!"

	sequential, err := newPipeline(t).Layout(s, chain)
	if err != nil {
		t.Fatalf("sequential Layout failed: %v", err)
	}
	parallel, err := newPipeline(t, WithWorkers(4)).Layout(s, chain)
	if err != nil {
		t.Fatalf("parallel Layout failed: %v", err)
	}
	if diff := cmp.Diff(summarize(sequential.Glyphs), summarize(parallel.Glyphs)); diff != "" {
		t.Errorf("parallel layout differs (-sequential +parallel):\n%s", diff)
	}
}

func TestLayoutShapingCache(t *testing.T) {
	cache := text.NewShapingCache(16)
	p := newPipeline(t, WithShapingCache(cache))
	chain := []text.FontCandidate{goRegular(t)}

	first, err := p.Layout("cached", chain)
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	second, err := p.Layout("cached", chain)
	if err != nil {
		t.Fatalf("second Layout failed: %v", err)
	}
	if stats := cache.Stats(); stats.Hits != 1 || stats.Len != 1 {
		t.Errorf("cache stats = %+v, want 1 hit, 1 entry", stats)
	}
	if diff := cmp.Diff(summarize(first.Glyphs), summarize(second.Glyphs)); diff != "" {
		t.Errorf("cached layout differs (-fresh +cached):\n%s", diff)
	}
}

func TestLayoutNames(t *testing.T) {
	reg := text.NewRegistry()
	defer reg.Close()
	if _, err := reg.Load("sans", goregular.TTF); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p, err := New(reg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer p.Close()

	result, err := p.LayoutNames("hi", 12, "sans")
	if err != nil {
		t.Fatalf("LayoutNames failed: %v", err)
	}
	if len(result.Glyphs) != 2 || result.Glyphs[0].Font.Name() != "sans" {
		t.Errorf("glyphs = %v", summarize(result.Glyphs))
	}
	if _, err := p.LayoutNames("hi", 12, "serif"); !errors.Is(err, text.ErrUnknownFont) {
		t.Errorf("unknown font err = %v, want ErrUnknownFont", err)
	}
	if _, err := newPipeline(t).LayoutNames("hi", 12, "sans"); err == nil {
		t.Error("LayoutNames without a registry succeeded")
	}
}

func TestCloseWaitsForLayout(t *testing.T) {
	p, err := New(nil, WithWorkers(4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	chain := []text.FontCandidate{newFakeFont(1, "latin", latinRunes), newFakeFont(2, "hebrew", hebrewRunes)}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, err := p.Layout("one אבג two דהו three", chain)
				if errors.Is(err, ErrPipelineClosed) {
					return
				}
				if err != nil {
					t.Errorf("Layout failed: %v", err)
					return
				}
			}
		}()
	}
	_ = p.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Layout calls did not finish after Close")
	}

	if _, err := p.Layout("late", chain); !errors.Is(err, ErrPipelineClosed) {
		t.Errorf("Layout after Close error = %v, want ErrPipelineClosed", err)
	}
}
