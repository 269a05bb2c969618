package tophits

// Domain is one independently scored sub-alignment region within a Hit.
type Domain struct {
	// Score is the domain bit score.
	Score float32
	// PValue is the domain P-value.
	PValue float64

	// IEnv and JEnv are the envelope coordinates on the target sequence.
	IEnv int64
	JEnv int64
	// IAli and JAli are the alignment extents on the target sequence.
	IAli int64
	JAli int64

	// Reported is set by TopHits.Threshold when the domain clears the
	// domain significance predicate, or is the hit's best domain.
	Reported bool

	// Ali is an opaque alignment-display payload owned by the hit list.
	// The container never interprets it; it is released by Reuse/Close and
	// its ownership moves with the hit on Merge.
	Ali []byte
}

// Hit is one scored match of a search target against the query, possibly
// carrying multiple domains. Hits are pure data; all behavior lives on the
// TopHits container that owns them.
type Hit struct {
	// Name, Acc and Desc identify the target. Each is independently
	// optional; the empty string means absent.
	Name string
	Acc  string
	Desc string

	// SortKey is the ranking value, bigger is better. It is distinct from,
	// but typically derived from, the hit's score or P-value; the container
	// only stores and compares it.
	SortKey float64

	// Score is the final bit score; PreScore the score before bias
	// correction; SumScore the sum over domains. Their exact meaning is
	// pipeline-defined.
	Score    float32
	PreScore float32
	SumScore float32

	// PValue, PrePValue and SumPValue are the P-value counterparts.
	PValue    float64
	PrePValue float64
	SumPValue float64

	// NExpected is the expected number of domains, and the region/cluster/
	// overlap/envelope counters are pipeline bookkeeping passed through
	// unchanged.
	NExpected  float64
	NRegions   int
	NClustered int
	NOverlaps  int
	NEnvelopes int

	// Reported is set by Threshold when the hit clears the target
	// significance predicate. NReported counts this hit's reported domains.
	Reported  bool
	NReported int

	// BestDomain is the index of the single best-scoring domain, or -1
	// while the hit has no domains. Invariant: -1 or < len(Domains).
	BestDomain int

	// Domains are the hit's sub-alignments, in discovery order.
	Domains []Domain
}

// NDom returns the number of domains in the hit.
func (h *Hit) NDom() int { return len(h.Domains) }

// reset returns the hit to its default-initialized state, dropping every
// owned sub-object so the garbage collector can reclaim it.
func (h *Hit) reset() {
	*h = Hit{BestDomain: -1}
}
