package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	"github.com/go-text/typesetting/font"
)

// nextSourceID hands out FontSource identifiers used in cache keys.
var nextSourceID atomic.Uint64

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared through a Registry.
//
// Engine-specific handles (the go-text font, the textlayout face) are
// parsed lazily on first use and then shared read-only.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection. It must point to the FontSource itself.
	addr *FontSource

	id     uint64
	name   string
	data   []byte
	parsed ParsedFont

	mu     sync.RWMutex
	closed bool

	goTextOnce sync.Once
	goTextFont *font.Font
	goTextErr  error

	// textlayout faces keep lazily decoded tables, so shaping against one
	// is serialized by hbMu.
	hbOnce sync.Once
	hbMu   sync.Mutex
	hbFace *hbtt.Font
	hbErr  error
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
// Parse failures are reported as *FontLoadError.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if len(data) == 0 {
		return nil, &FontLoadError{Name: config.name, Err: ErrEmptyFontData}
	}

	parsed, err := config.parser.Parse(data)
	if err != nil {
		return nil, &FontLoadError{Name: config.name, Err: err}
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{
		id:     nextSourceID.Add(1),
		data:   dataCopy,
		parsed: parsed,
		name:   config.name,
	}
	s.addr = s
	if s.name == "" {
		s.name = extractFontName(parsed)
	}

	Logger().Debug("font source loaded", "name", s.name, "glyphs", parsed.NumGlyphs(), "upem", parsed.UnitsPerEm())
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Name: path, Err: err}
	}
	return NewFontSource(data, opts...)
}

// Face creates a Face at the specified size in pixels per em.
// Panics if s is nil (e.g. when a NewFontSource error was ignored).
func (s *FontSource) Face(size float64, opts ...FaceOption) *Face {
	if s == nil {
		panic("text: FontSource is nil, did you check the error from NewFontSource?")
	}
	s.copyCheck()
	return newFace(s, size, opts...)
}

// ID returns the process-unique identifier of the source.
func (s *FontSource) ID() uint64 {
	return s.id
}

// Name returns the font name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parsed returns the parsed font for metadata and metric queries.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	return s.parsed
}

// UnitsPerEm returns the design units per em of the font.
func (s *FontSource) UnitsPerEm() int {
	return s.parsed.UnitsPerEm()
}

// Close releases the font data. Faces created from the source report
// ErrSourceClosed from their engines afterwards.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	return nil
}

// isClosed reports whether Close has been called.
func (s *FontSource) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// goText returns the go-text font parsed from the source data.
// font.Font is read-only and safe for concurrent use, unlike font.Face.
func (s *FontSource) goText() (*font.Font, error) {
	if s.isClosed() {
		return nil, ErrSourceClosed
	}
	s.goTextOnce.Do(func() {
		s.mu.RLock()
		data := s.data
		s.mu.RUnlock()

		face, err := font.ParseTTF(bytes.NewReader(data))
		if err != nil {
			s.goTextErr = fmt.Errorf("go-text parse: %w", err)
			return
		}
		s.goTextFont = face.Font
	})
	return s.goTextFont, s.goTextErr
}

// withTextlayout runs fn with exclusive access to the textlayout face.
func (s *FontSource) withTextlayout(fn func(face *hbtt.Font) error) error {
	if s.isClosed() {
		return ErrSourceClosed
	}
	s.hbOnce.Do(func() {
		s.mu.RLock()
		data := s.data
		s.mu.RUnlock()

		face, err := hbtt.Parse(bytes.NewReader(data), true)
		if err != nil {
			s.hbErr = fmt.Errorf("textlayout parse: %w", err)
			return
		}
		s.hbFace = face
	})
	if s.hbErr != nil {
		return s.hbErr
	}

	s.hbMu.Lock()
	defer s.hbMu.Unlock()
	return fn(s.hbFace)
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}
