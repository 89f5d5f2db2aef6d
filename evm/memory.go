package evm

import (
	"github.com/entropyio/cubipods/config"
)

// Memory implements a simple memory model for the virtual machine. It grows
// on access in whole words and never shrinks.
type Memory struct {
	store []byte
	limit uint64
}

// NewMemory returns a new memory model capped at limit bytes, rounded down to
// a whole word. A zero limit means config.MaxMemorySize.
func NewMemory(limit uint64) *Memory {
	if limit == 0 || limit > config.MaxMemorySize {
		limit = config.MaxMemorySize
	}
	limit -= limit % config.WordSize
	return &Memory{limit: limit}
}

// require grows the memory to cover [offset, offset+size) and returns the
// end of the range.
func (m *Memory) require(offset, size uint64) (uint64, error) {
	end := offset + size
	if end < offset || end > m.limit {
		return 0, errMemoryOverflow(offset, size)
	}
	m.Resize(end)
	return end, nil
}

// Resize grows the memory to hold size bytes, rounded up to a whole word.
// Smaller sizes are a no-op.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	size = toWordSize(size) * config.WordSize
	m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
}

// LoadWord reads the 32 bytes starting at offset.
func (m *Memory) LoadWord(offset uint64) (Word, error) {
	end, err := m.require(offset, config.WordSize)
	if err != nil {
		return Word{}, err
	}
	return wordFromBytes(m.store[offset:end]), nil
}

// StoreWord writes the 32 byte big-endian form of val at offset.
func (m *Memory) StoreWord(offset uint64, val *Word) error {
	if _, err := m.require(offset, config.WordSize); err != nil {
		return err
	}
	b32 := val.Bytes32()
	copy(m.store[offset:], b32[:])
	return nil
}

// StoreByte writes a single byte at offset.
func (m *Memory) StoreByte(offset uint64, val byte) error {
	if _, err := m.require(offset, 1); err != nil {
		return err
	}
	m.store[offset] = val
	return nil
}

// ReadRange returns a copy of size bytes starting at offset. A zero size
// returns an empty slice without touching memory.
func (m *Memory) ReadRange(offset, size uint64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	end, err := m.require(offset, size)
	if err != nil {
		return nil, err
	}
	cpy := make([]byte, size)
	copy(cpy, m.store[offset:end])
	return cpy, nil
}

// Len returns the length of the backing slice
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the backing slice
func (m *Memory) Data() []byte {
	return m.store
}

// toWordSize returns the number of words needed for size bytes.
func toWordSize(size uint64) uint64 {
	if size > ^uint64(0)-31 {
		return ^uint64(0)/32 + 1
	}
	return (size + 31) / 32
}
