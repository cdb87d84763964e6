// Package store holds the ordered list of gallery entries. It is not safe for
// concurrent use; the gallery service serialises access.
package store

import "studio/internal/domains/gallery/model"

type Store struct {
	entries []model.Entry
}

func New() *Store {
	return &Store{}
}

// Load replaces the contents with a copy of entries.
func (s *Store) Load(entries []model.Entry) {
	s.entries = append([]model.Entry(nil), entries...)
}

// Prepend inserts entry as the newest item.
func (s *Store) Prepend(entry model.Entry) {
	s.entries = append(s.entries, model.Entry{})
	copy(s.entries[1:], s.entries)
	s.entries[0] = entry
}

func (s *Store) Size() int {
	return len(s.entries)
}

// Page returns a copy of the entries of the given 1-based page. Out of range pages
// yield an empty slice.
func (s *Store) Page(page, size int) []model.Entry {
	if page < 1 || size < 1 {
		return []model.Entry{}
	}

	start := (page - 1) * size
	if start >= len(s.entries) {
		return []model.Entry{}
	}

	end := min(start+size, len(s.entries))

	return append([]model.Entry(nil), s.entries[start:end]...)
}

// Entry returns the entry at an absolute index.
func (s *Store) Entry(index int) (model.Entry, bool) {
	if index < 0 || index >= len(s.entries) {
		return model.Entry{}, false
	}

	return s.entries[index], true
}
