package memory

import (
	"sort"
	"sync"
)

// table is one entity type's rows keyed by id. Every operation holds the
// table's lock for its whole duration, so single-table operations are atomic.
// Rows are cloned on the way in and out; callers never alias stored state.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[int64]T
	last  int64
	clone func(T) T
}

// newTable builds a table. clone may be nil for rows without pointer fields.
func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{rows: make(map[int64]T), clone: clone}
}

func (t *table[T]) copyOf(row T) *T {
	out := t.clone(row)
	return &out
}

func (t *table[T]) get(id int64) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	return t.copyOf(row)
}

// ids returns the keys in ascending order. Callers hold the lock.
func (t *table[T]) ids() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// filter returns matching rows ordered by id. A nil match selects everything.
func (t *table[T]) filter(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for _, id := range t.ids() {
		row := t.rows[id]
		if match == nil || match(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// first returns the lowest-id matching row.
func (t *table[T]) first(match func(T) bool) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.ids() {
		if row := t.rows[id]; match(row) {
			return t.copyOf(row)
		}
	}
	return nil
}

// insert assigns the next id and stores the row built for it. Ids start at 1
// and are never handed out twice, even after deletes.
func (t *table[T]) insert(build func(id int64) T) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last++
	row := t.clone(build(t.last))
	t.rows[t.last] = row
	return t.copyOf(row)
}

func (t *table[T]) update(id int64, apply func(*T)) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	apply(&row)
	row = t.clone(row)
	t.rows[id] = row
	return t.copyOf(row)
}

func (t *table[T]) delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}
