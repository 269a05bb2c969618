package tophits

import (
	"math"
	"sort"
)

// defaultCapacity is the initial record store allocation. Growth doubles it.
const defaultCapacity = 256

// maxHits bounds the record count to what the int32 sorted view can index.
const maxHits = math.MaxInt32

// TopHits is a ranked list of search hits.
//
// Hits live in an append-only record store; a sorted view of store indices
// gives rank order by descending sort key. The view is valid only while the
// container is in the sorted state; Append transitions to unsorted once the
// container holds two or more hits, Sort transitions back.
type TopHits struct {
	unsrt []Hit   // record store, append order
	order []int32 // sorted view: unsrt indices by descending sort key

	nreported int  // hits flagged reportable by Threshold
	sorted    bool // order matches a true ranking of unsrt

	// consumed marks a container whose hits were moved out by Merge.
	// Such a container accepts only Close.
	consumed bool
}

// New creates an empty hit list with the default pre-allocated capacity.
// An empty list is trivially sorted.
func New() *TopHits {
	return &TopHits{
		unsrt:  make([]Hit, 0, defaultCapacity),
		order:  make([]int32, 0, defaultCapacity),
		sorted: true,
	}
}

// Len returns the number of hits in the list.
func (th *TopHits) Len() int { return len(th.unsrt) }

// NumReported returns the number of hits flagged reportable by Threshold.
func (th *TopHits) NumReported() int { return th.nreported }

// IsSorted reports whether the sorted view currently matches a true ranking.
func (th *TopHits) IsSorted() bool { return th.sorted }

// Grow doubles the record store allocation if the list cannot hold another
// hit. On failure the list is unchanged. Because the sorted view holds store
// indices rather than addresses, growth never invalidates it.
func (th *TopHits) Grow() error {
	if len(th.unsrt) < cap(th.unsrt) {
		return nil
	}
	nalloc := cap(th.unsrt) * 2
	if nalloc == 0 {
		nalloc = defaultCapacity
	}
	if nalloc > maxHits {
		return ErrTooManyHits
	}

	unsrt := make([]Hit, len(th.unsrt), nalloc)
	order := make([]int32, len(th.order), nalloc)
	copy(unsrt, th.unsrt)
	copy(order, th.order)
	th.unsrt = unsrt
	th.order = order
	return nil
}

// CreateNextHit appends a new default-initialized hit to the list and
// returns it for in-place population. All numeric fields are zero, flags
// false, BestDomain -1.
//
// The returned pointer aliases the record store: it is valid only until the
// next append or merge, which may relocate the store. Fill it in before
// mutating the list again.
func (th *TopHits) CreateNextHit() (*Hit, error) {
	if th.consumed {
		return nil, ErrConsumed
	}
	if err := th.Grow(); err != nil {
		return nil, err
	}

	th.unsrt = append(th.unsrt, Hit{BestDomain: -1})
	switch n := len(th.unsrt); {
	case n == 1:
		// A single-hit list is trivially sorted; wire the view so ranked
		// reads need no special case.
		th.order = append(th.order[:0], 0)
	case n >= 2:
		th.sorted = false
	}
	return &th.unsrt[len(th.unsrt)-1], nil
}

// Add appends a hit by value. The identity strings may be empty for absent.
// Callers that need to attach domains or further fields should use
// CreateNextHit instead.
func (th *TopHits) Add(name, acc, desc string, sortkey float64, score float32, pvalue float64) error {
	hit, err := th.CreateNextHit()
	if err != nil {
		return err
	}
	hit.Name = name
	hit.Acc = acc
	hit.Desc = desc
	hit.SortKey = sortkey
	hit.Score = score
	hit.PValue = pvalue
	return nil
}

// Sort establishes the sorted view: descending by sort key, ties in
// whatever order the underlying sort produces. It is a no-op when the list
// is already sorted, so callers may invoke it defensively at O(1) cost.
func (th *TopHits) Sort() {
	if th.sorted {
		return
	}
	th.order = th.order[:0]
	for i := range th.unsrt {
		th.order = append(th.order, int32(i))
	}
	if len(th.order) > 1 {
		sort.Slice(th.order, func(a, b int) bool {
			return th.unsrt[th.order[a]].SortKey > th.unsrt[th.order[b]].SortKey
		})
	}
	th.sorted = true
}

// At returns the hit with rank i (0 = best). The list must be in the sorted
// state; reading a stale view is programmer error and panics.
func (th *TopHits) At(i int) *Hit {
	if !th.sorted {
		panic("tophits: ranked read of unsorted list")
	}
	return &th.unsrt[th.order[i]]
}

// Records returns the hits in append order, backed by the record store.
// Callers must treat the slice as read-only.
func (th *TopHits) Records() []Hit { return th.unsrt }

// Merge moves every hit of src into th and leaves th sorted. Both lists are
// sorted first if needed; the two sorted views are then interleaved in a
// single linear pass, ties favoring th.
//
// Merge consumes src: afterwards src is empty and accepts only Close.
// On error neither list has been modified.
func (th *TopHits) Merge(src *TopHits) error {
	if th == src {
		return ErrSelfMerge
	}
	if th.consumed || src.consumed {
		return ErrConsumed
	}
	if len(th.unsrt)+len(src.unsrt) > maxHits {
		return ErrTooManyHits
	}

	th.Sort()
	src.Sort()

	// Build the combined store and view in full before installing either,
	// so the merge either happens completely or not at all.
	nalloc := cap(th.unsrt) + cap(src.unsrt)
	unsrt := make([]Hit, 0, nalloc)
	unsrt = append(unsrt, th.unsrt...)
	unsrt = append(unsrt, src.unsrt...)

	// Source hits now live at base+i in the combined store; its view
	// entries just need the additive rebase.
	base := int32(len(th.unsrt))
	order := make([]int32, 0, nalloc)
	i, j := 0, 0
	for i < len(th.order) && j < len(src.order) {
		if src.unsrt[src.order[j]].SortKey > th.unsrt[th.order[i]].SortKey {
			order = append(order, base+src.order[j])
			j++
		} else {
			order = append(order, th.order[i])
			i++
		}
	}
	order = append(order, th.order[i:]...)
	for ; j < len(src.order); j++ {
		order = append(order, base+src.order[j])
	}

	th.unsrt = unsrt
	th.order = order
	th.sorted = true

	// Ownership of the source's hits (and their domain payloads) has moved
	// into th; leave src as an emptied shell that is only valid to Close.
	for k := range src.unsrt {
		src.unsrt[k].reset()
	}
	src.unsrt = src.unsrt[:0]
	src.order = src.order[:0]
	src.sorted = true
	src.consumed = true
	return nil
}

// Reuse logically empties the list while keeping its backing allocations,
// so repeated pipeline runs amortize allocation cost to zero. Per-hit owned
// sub-objects are dropped for the garbage collector.
func (th *TopHits) Reuse() error {
	if th == nil {
		return nil
	}
	if th.consumed {
		return ErrConsumed
	}
	for i := range th.unsrt {
		th.unsrt[i].reset()
	}
	th.unsrt = th.unsrt[:0]
	th.order = th.order[:0]
	th.nreported = 0
	th.sorted = true
	return nil
}

// Close releases the list and everything it owns. It is safe on a nil or
// already-closed list, and is the only valid operation on a merged-out
// (consumed) list.
func (th *TopHits) Close() error {
	if th == nil {
		return nil
	}
	for i := range th.unsrt {
		th.unsrt[i].reset()
	}
	th.unsrt = nil
	th.order = nil
	th.nreported = 0
	th.sorted = true
	th.consumed = true
	return nil
}

// MaxNameLength returns the length in bytes of the longest hit name, over
// all hits regardless of reporting flags. It returns 0 for an empty list or
// when no hit has a name. Report formatters use it to size name columns.
func (th *TopHits) MaxNameLength() int {
	max := 0
	for i := range th.unsrt {
		if n := len(th.unsrt[i].Name); n > max {
			max = n
		}
	}
	return max
}
