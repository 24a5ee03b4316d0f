package graphics

import (
	"strconv"

	"github.com/dnrgps/dnrgps/pkg/host"
)

// GraphicID identifies a graphic created by an Engine. Ids start at 1 and
// are never reused until a full clear.
type GraphicID int

func (id GraphicID) String() string { return strconv.Itoa(int(id)) }

// Tags correlates ids with host elements. The host owns the elements; a
// tagged element may disappear from the map without Tags noticing.
type Tags struct {
	byID   map[GraphicID]host.Element
	byElem map[host.Element]GraphicID
}

// NewTags returns an empty table.
func NewTags() *Tags {
	return &Tags{
		byID:   make(map[GraphicID]host.Element),
		byElem: make(map[host.Element]GraphicID),
	}
}

// Set tags e with id, replacing any previous tag of either.
func (t *Tags) Set(id GraphicID, e host.Element) {
	if old, ok := t.byID[id]; ok {
		delete(t.byElem, old)
	}
	if old, ok := t.byElem[e]; ok {
		delete(t.byID, old)
	}
	t.byID[id] = e
	t.byElem[e] = id
}

// Lookup returns the element tagged id.
func (t *Tags) Lookup(id GraphicID) (host.Element, bool) {
	e, ok := t.byID[id]
	return e, ok
}

// IDOf returns the id tagging e.
func (t *Tags) IDOf(e host.Element) (GraphicID, bool) {
	id, ok := t.byElem[e]
	return id, ok
}

// Swap exchanges the ids of a and b. Both must be tagged.
func (t *Tags) Swap(a, b host.Element) bool {
	ia, okA := t.byElem[a]
	ib, okB := t.byElem[b]
	if !okA || !okB {
		return false
	}
	t.byElem[a], t.byElem[b] = ib, ia
	t.byID[ia], t.byID[ib] = b, a
	return true
}

// Forget drops the tag of e.
func (t *Tags) Forget(e host.Element) {
	if id, ok := t.byElem[e]; ok {
		delete(t.byElem, e)
		delete(t.byID, id)
	}
}

// Retain keeps the tags of elements for which keep returns true and drops
// the rest. It returns the number of tags dropped.
func (t *Tags) Retain(keep func(host.Element) bool) int {
	n := 0
	for e, id := range t.byElem {
		if !keep(e) {
			delete(t.byElem, e)
			delete(t.byID, id)
			n++
		}
	}
	return n
}

// Len returns the number of tagged elements.
func (t *Tags) Len() int { return len(t.byID) }

// Reset drops every tag.
func (t *Tags) Reset() {
	clear(t.byID)
	clear(t.byElem)
}
