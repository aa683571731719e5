// Package dataset implements C5 (data references into a fixed dataset) and
// C11 (the lenient UCI-style CSV loader named as an external collaborator in
// spec.md §6).
package dataset

import "sort"

// Refs is D: a sorted set of indices into a fixed dataset, representing
// "rows still in play". Functional: every operation returns a fresh Refs: D
// is never mutated in place.
type Refs struct {
	idx []int // sorted, unique
}

// Full returns the reference set {0, ..., n-1}.
func Full(n int) Refs {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Refs{idx: idx}
}

// FromSlice builds Refs from arbitrary indices, sorting and de-duplicating.
func FromSlice(indices []int) Refs {
	cp := append([]int(nil), indices...)
	sort.Ints(cp)
	out := cp[:0]
	for i, v := range cp {
		if i == 0 || v != cp[i-1] {
			out = append(out, v)
		}
	}
	return Refs{idx: out}
}

// Len returns |D|.
func (r Refs) Len() int { return len(r.idx) }

// Indices returns D's members in ascending order. The returned slice must
// not be mutated by callers.
func (r Refs) Indices() []int { return r.idx }

// Contains reports whether i is a member of D.
func (r Refs) Contains(i int) bool {
	n := sort.SearchInts(r.idx, i)
	return n < len(r.idx) && r.idx[n] == i
}

// Filter returns the subset of D for which keep returns true, preserving
// order. This is the mechanism by which T#.filter shrinks D; D is never
// mutated in place.
func (r Refs) Filter(keep func(i int) bool) Refs {
	out := make([]int, 0, len(r.idx))
	for _, i := range r.idx {
		if keep(i) {
			out = append(out, i)
		}
	}
	return Refs{idx: out}
}

// Union is the reference-set join used when two T# values are joined: the
// surviving rows of either branch could still be in play.
func Union(a, b Refs) Refs {
	out := make([]int, 0, len(a.idx)+len(b.idx))
	i, j := 0, 0
	for i < len(a.idx) && j < len(b.idx) {
		switch {
		case a.idx[i] < b.idx[j]:
			out = append(out, a.idx[i])
			i++
		case a.idx[i] > b.idx[j]:
			out = append(out, b.idx[j])
			j++
		default:
			out = append(out, a.idx[i])
			i++
			j++
		}
	}
	out = append(out, a.idx[i:]...)
	out = append(out, b.idx[j:]...)
	return Refs{idx: out}
}
