package domain

import "sort"

// ChangeTracker records which product fields were modified since the aggregate
// was loaded, so stores can write only the dirty columns.
type ChangeTracker struct {
	dirty map[string]struct{}
}

// NewChangeTracker creates a new ChangeTracker instance.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]struct{})}
}

// MarkDirty marks a field as dirty (modified).
func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirty[field] = struct{}{}
}

// Dirty checks if a specific field has been marked dirty.
func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.dirty[field]
	return ok
}

// HasChanges returns true if any fields have been marked dirty.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// DirtyFields returns the dirty field names in lexical order so generated
// statements are stable.
func (ct *ChangeTracker) DirtyFields() []string {
	fields := make([]string, 0, len(ct.dirty))
	for field := range ct.dirty {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (ct *ChangeTracker) clone() *ChangeTracker {
	out := NewChangeTracker()
	for f := range ct.dirty {
		out.dirty[f] = struct{}{}
	}
	return out
}

// Clear removes all dirty field markers.
func (ct *ChangeTracker) Clear() {
	ct.dirty = make(map[string]struct{})
}
