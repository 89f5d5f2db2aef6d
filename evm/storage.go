package evm

import (
	"sort"
)

// Storage is the word addressed key/value store of a run. Slots that were
// never written read as zero.
type Storage struct {
	slots map[Word]Word
}

// StorageEntry is one written storage slot.
type StorageEntry struct {
	Key   Word
	Value Word
}

// NewStorage returns an empty storage.
func NewStorage() *Storage {
	return &Storage{slots: make(map[Word]Word)}
}

// Load returns the value of key, the zero word if it was never stored.
func (s *Storage) Load(key *Word) Word {
	return s.slots[*key]
}

// Store sets key to value, overwriting any previous value.
func (s *Storage) Store(key, value *Word) {
	s.slots[*key] = *value
}

// Len returns the number of written slots.
func (s *Storage) Len() int {
	return len(s.slots)
}

// Entries returns every written slot ordered by key.
func (s *Storage) Entries() []StorageEntry {
	entries := make([]StorageEntry, 0, len(s.slots))
	for k, v := range s.slots {
		entries = append(entries, StorageEntry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Lt(&entries[j].Key)
	})
	return entries
}
