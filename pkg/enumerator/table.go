package enumerator

import "github.com/aretw0/tabula/pkg/domain"

// table is a dense bijection between state keys and ids in [0, N).
// The next free id is always len(index); nothing outside this file assigns ids.
// expanded[id] is true once every applicable action of that state has been
// followed; the remaining ids form the frontier of an interrupted pass.
type table struct {
	enum     map[string]int
	index    []*domain.State
	expanded []bool
	done     int
}

func newTable(capacity int) *table {
	return &table{
		enum:  make(map[string]int, capacity),
		index:    make([]*domain.State, 0, capacity),
		expanded: make([]bool, 0, capacity),
	}
}

// add assigns the next id to key unless it is already present.
func (t *table) add(key string, s *domain.State) (int, bool) {
	if id, exists := t.enum[key]; exists {
		return id, false
	}
	id := len(t.index)
	t.enum[key] = id
	t.index = append(t.index, s)
	t.expanded = append(t.expanded, false)
	return id, true
}

func (t *table) markExpanded(id int) {
	if !t.expanded[id] {
		t.expanded[id] = true
		t.done++
	}
}

// pending returns the ids that were discovered but never expanded, in id order.
func (t *table) pending() []int {
	if t.done == len(t.index) {
		return nil
	}
	out := make([]int, 0, len(t.index)-t.done)
	for id, ok := range t.expanded {
		if !ok {
			out = append(out, id)
		}
	}
	return out
}

func (t *table) indexOf(key string) (int, bool) {
	id, ok := t.enum[key]
	return id, ok
}

func (t *table) valueOf(id int) (*domain.State, bool) {
	if id < 0 || id >= len(t.index) {
		return nil, false
	}
	return t.index[id], true
}

func (t *table) len() int {
	return len(t.index)
}
