package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrEmptyChain is returned when a fallback chain has no candidates.
	ErrEmptyChain = errors.New("text: font chain cannot be empty")

	// ErrUnknownFont is returned by Registry lookups for unregistered names.
	ErrUnknownFont = errors.New("text: unknown font")

	// ErrDuplicateFont is returned when a name is registered twice.
	ErrDuplicateFont = errors.New("text: font already registered")

	// ErrRegistryClosed is returned by a Registry after Close.
	ErrRegistryClosed = errors.New("text: registry closed")

	// ErrSourceClosed is returned when an engine is asked to use a closed
	// FontSource.
	ErrSourceClosed = errors.New("text: font source closed")

	// ErrNoGlyphOutput reports that an engine produced no glyphs for
	// non-empty input. It is recoverable: the caller may retry the run with
	// the next candidate of the fallback chain.
	ErrNoGlyphOutput = errors.New("text: no glyph output")

	// ErrMissingOutline reports that a glyph has no scalable outline
	// (bitmap-only, color or SVG glyphs). It is an expected condition.
	ErrMissingOutline = errors.New("text: glyph has no outline")

	// ErrInvalidUnitsPerEm is returned when an engine reports design units
	// for a font whose units-per-em is not positive.
	ErrInvalidUnitsPerEm = errors.New("text: invalid units per em")

	// ErrInvalidSize is returned for a non-positive font size.
	ErrInvalidSize = errors.New("text: font size must be positive")
)

// FontLoadError is returned when font bytes cannot be parsed. It is raised
// before any layout starts.
type FontLoadError struct {
	Name string
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("text: load font: %v", e.Err)
	}
	return fmt.Sprintf("text: load font %q: %v", e.Name, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// NoGlyphOutputError carries the font and text of a run that produced no
// glyphs. It matches ErrNoGlyphOutput with errors.Is.
type NoGlyphOutputError struct {
	Font string
	Text string
}

func (e *NoGlyphOutputError) Error() string {
	return fmt.Sprintf("text: no glyph output from %q for %q", e.Font, e.Text)
}

func (e *NoGlyphOutputError) Is(target error) bool { return target == ErrNoGlyphOutput }

// EngineError is a fatal configuration failure of a shaping or outline
// engine (font handle unusable, bad scale). It affects one run only.
type EngineError struct {
	Engine string
	Font   string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("text: %s engine failed for %q: %v", e.Engine, e.Font, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// FeatureTagError is returned for an OpenType feature tag that is not four
// bytes long.
type FeatureTagError struct {
	Tag string
}

func (e *FeatureTagError) Error() string {
	return fmt.Sprintf("text: invalid feature tag %q", e.Tag)
}
