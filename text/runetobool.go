package text

import "sync"

// RuneToBoolMap remembers a yes/no capability answer per rune using two
// bits per rune: one "known" bit and one "value" bit. Storage is allocated
// in blocks of 256 runes on first use, which keeps sparse Unicode access
// (a paragraph of Latin with one emoji) small.
//
// RuneToBoolMap is safe for concurrent use.
// RuneToBoolMap must not be copied after creation (has mutex).
type RuneToBoolMap struct {
	mu     sync.RWMutex
	blocks map[uint32]*runeBlock
}

// runeBlock holds 256 runes x 2 bits.
type runeBlock [8]uint64

// NewRuneToBoolMap creates an empty map.
func NewRuneToBoolMap() *RuneToBoolMap {
	return &RuneToBoolMap{blocks: make(map[uint32]*runeBlock)}
}

// locate returns the block key, the word index and the bit shift of r.
func locate(r rune) (key uint32, word int, shift uint) {
	u := uint32(r)
	bit := (u & 0xFF) * 2
	return u >> 8, int(bit / 64), uint(bit % 64)
}

// Get returns the stored value and whether r has been stored at all.
func (m *RuneToBoolMap) Get(r rune) (value, known bool) {
	key, word, shift := locate(r)

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blocks[key]
	if !ok {
		return false, false
	}
	bits := b[word] >> shift
	return bits&2 != 0, bits&1 != 0
}

// Set stores value for r.
func (m *RuneToBoolMap) Set(r rune, value bool) {
	key, word, shift := locate(r)

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blocks[key]
	if !ok {
		b = &runeBlock{}
		m.blocks[key] = b
	}
	b[word] &^= 3 << shift
	b[word] |= 1 << shift
	if value {
		b[word] |= 2 << shift
	}
}

// Clear forgets every stored answer.
func (m *RuneToBoolMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks = make(map[uint32]*runeBlock)
}
