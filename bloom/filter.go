// Package bloom provides duplicate-page detection using Bloom filters.
//
// Batch runs over scanned archives routinely contain the same sheet twice,
// either as a literal duplicate file or as a re-scan of the same page. The
// filter tracks source-text fingerprints so the processor can skip pages it
// has already parsed without keeping every hash in memory.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenFilter tracks which page fingerprints have been processed.
type SeenFilter struct {
	f *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected pages with the given
// false positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Observe marks the fingerprint as seen and reports whether it may have been
// seen before. False positives are possible; false negatives are not, so a
// false return always means a new page.
func (f *SeenFilter) Observe(hash string) bool {
	return f.f.TestAndAddString(hash)
}

// Seen reports whether the fingerprint may have been observed, without
// marking it.
func (f *SeenFilter) Seen(hash string) bool {
	return f.f.TestString(hash)
}

// EstimatedCount returns the approximate number of distinct pages observed.
func (f *SeenFilter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
