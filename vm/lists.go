package vm

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// ListEntry is one weighted item of a dynamic list.
type ListEntry struct {
	Item   uint32
	Weight int32
}

// List is a weighted bag created at run time.
type List struct {
	ID      uint32
	Entries []ListEntry
}

// createList allocates a fresh list ident, starting at 1.
func (g *game) createList() uint32 {
	id := g.nextList
	g.nextList++
	g.lists[id] = &List{ID: id}
	return id
}

func (g *game) list(id uint32) (*List, error) {
	l, ok := g.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %d: %w", id, ErrUnknownList)
	}
	return l, nil
}

// addToList adds weight to item, inserting it if needed.
// Non positive weights are ignored.
func (g *game) addToList(id, item uint32, weight int32) error {
	l, err := g.list(id)
	if err != nil {
		return err
	}
	if weight <= 0 {
		return nil
	}
	for i, elem := range l.Entries {
		if elem.Item == item {
			l.Entries[i].Weight += weight
			return nil
		}
	}
	l.Entries = append(l.Entries, ListEntry{Item: item, Weight: weight})
	return nil
}

func (l *List) remove(item uint32) {
	l.Entries = slices.DeleteFunc(l.Entries, func(e ListEntry) bool { return e.Item == item })
}

func (l *List) contains(item uint32) bool {
	return slices.ContainsFunc(l.Entries, func(e ListEntry) bool { return e.Item == item })
}

// draw picks an item with probability weight/total, 0 when empty.
func (l *List) draw(rng *rand.Rand) uint32 {
	var total int64
	for _, elem := range l.Entries {
		total += int64(elem.Weight)
	}
	if total <= 0 {
		return 0
	}
	r := rng.Int64N(total)
	for _, elem := range l.Entries {
		if r < int64(elem.Weight) {
			return elem.Item
		}
		r -= int64(elem.Weight)
	}
	return 0
}
