package tophits

import "github.com/RoaringBitmap/roaring/v2"

// ReportingPipeline supplies the significance decisions for Threshold.
// The container stores and flags hits; what counts as reportable, and how
// the domain search space is derived, belong to the pipeline.
type ReportingPipeline interface {
	// TargetReportable reports whether a hit with the given score and
	// P-value clears the per-target reporting thresholds.
	TargetReportable(score float32, pvalue float64) bool

	// DomainReportable reports whether a domain with the given score and
	// P-value clears the per-domain reporting thresholds.
	DomainReportable(score float32, pvalue float64) bool

	// UpdateDomainSearchSpace is called between the target and domain
	// passes with the number of hits just flagged reportable. Pipelines
	// that derive their domain search space from the reported target count
	// refresh it here; others may ignore the call.
	UpdateDomainSearchSpace(nreported int)
}

// Threshold flags reportable hits and domains in two passes.
//
// Pass one evaluates the target predicate on every hit and counts the
// reportable ones. The pipeline is then given that count, so the domain
// predicate it answers in pass two can use a search space derived from it.
// Pass two flags domains of reportable hits: a hit's best-scoring domain is
// always flagged regardless of threshold, so every reportable hit ends with
// at least one reportable domain.
//
// Flags and counters are recomputed from scratch, making the pass
// idempotent for a fixed pipeline. Hit order is irrelevant; the list need
// not be sorted.
func (th *TopHits) Threshold(pli ReportingPipeline) {
	th.nreported = 0
	for i := range th.unsrt {
		hit := &th.unsrt[i]
		hit.Reported = pli.TargetReportable(hit.Score, hit.PValue)
		hit.NReported = 0
		if hit.Reported {
			th.nreported++
		}
	}

	pli.UpdateDomainSearchSpace(th.nreported)

	for i := range th.unsrt {
		hit := &th.unsrt[i]
		if !hit.Reported {
			for d := range hit.Domains {
				hit.Domains[d].Reported = false
			}
			continue
		}
		for d := range hit.Domains {
			dom := &hit.Domains[d]
			dom.Reported = d == hit.BestDomain ||
				pli.DomainReportable(dom.Score, dom.PValue)
			if dom.Reported {
				hit.NReported++
			}
		}
	}
}

// RecountReported recomputes the reported-hit count from the per-hit flags
// and returns it. Lists rebuilt from a snapshot carry flags but not the
// container counter; this restores it without re-running Threshold.
func (th *TopHits) RecountReported() int {
	th.nreported = 0
	for i := range th.unsrt {
		if th.unsrt[i].Reported {
			th.nreported++
		}
	}
	return th.nreported
}

// ReportableSet returns the store indices of hits currently flagged
// reportable, as a bitmap collaborators can iterate, count, or intersect.
// Call Threshold first; an unthresholded list yields an empty set.
func (th *TopHits) ReportableSet() *roaring.Bitmap {
	set := roaring.New()
	for i := range th.unsrt {
		if th.unsrt[i].Reported {
			set.Add(uint32(i))
		}
	}
	return set
}
