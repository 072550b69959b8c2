package text

import (
	"fmt"
	"slices"
	"sync"

	"github.com/flopp/go-findfont"
)

// Registry owns the FontSources of one session. It replaces a
// process-wide font manager: the caller constructs it, passes it to the
// layout pipeline and closes it when the session ends.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]*FontSource
	order   []string
	closed  bool

	// find resolves a font file name to a path on this system.
	find func(name string) (string, error)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]*FontSource),
		find:    findfont.Find,
	}
}

// Load parses data and registers it under name.
func (r *Registry) Load(name string, data []byte, opts ...SourceOption) (*FontSource, error) {
	opts = append([]SourceOption{WithSourceName(name)}, opts...)
	src, err := NewFontSource(data, opts...)
	if err != nil {
		return nil, err
	}
	return src, r.add(name, src)
}

// LoadFile reads and registers a font file under name.
func (r *Registry) LoadFile(name, path string, opts ...SourceOption) (*FontSource, error) {
	opts = append([]SourceOption{WithSourceName(name)}, opts...)
	src, err := NewFontSourceFromFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return src, r.add(name, src)
}

// LoadSystem looks file up in the platform font directories (for example
// "DejaVuSans.ttf" or "arial") and registers it under name.
func (r *Registry) LoadSystem(name, file string, opts ...SourceOption) (*FontSource, error) {
	path, err := r.find(file)
	if err != nil {
		return nil, &FontLoadError{Name: name, Err: fmt.Errorf("find %q: %w", file, err)}
	}
	Logger().Debug("system font resolved", "name", name, "path", path)
	return r.LoadFile(name, path, opts...)
}

func (r *Registry) add(name string, src *FontSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		_ = src.Close()
		return ErrRegistryClosed
	}
	if _, ok := r.sources[name]; ok {
		_ = src.Close()
		return fmt.Errorf("%w: %q", ErrDuplicateFont, name)
	}
	r.sources[name] = src
	r.order = append(r.order, name)
	return nil
}

// Source returns the source registered under name.
func (r *Registry) Source(name string) (*FontSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}
	return src, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Chain builds a fallback chain of faces at size from the named sources,
// in the given order. The first name is the primary font.
func (r *Registry) Chain(size float64, names []string, opts ...FaceOption) ([]FontCandidate, error) {
	if len(names) == 0 {
		return nil, ErrEmptyChain
	}
	chain := make([]FontCandidate, 0, len(names))
	for _, name := range names {
		src, err := r.Source(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, src.Face(size, opts...))
	}
	return chain, nil
}

// Close closes every registered source. Further calls return
// ErrRegistryClosed from lookups. Close is safe to call multiple times.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	for _, name := range r.order {
		_ = r.sources[name].Close()
	}
	clear(r.sources)
	r.order = nil
	return nil
}
