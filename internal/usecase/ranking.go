package usecase

import (
	"sort"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
)

// Ranker collects ranked entries per destination bucket and reports the K cheapest.
//
// Insert appends without ordering; Finalize does the single stable sort, so
// entries with equal total price keep their insertion order. A Ranker is owned
// by one sweep and is not safe for concurrent use.
type Ranker struct {
	k       int
	buckets map[string][]domain.RankedEntry
}

// NewRanker creates a Ranker keeping k entries per bucket.
// A non-positive k falls back to DefaultTopK.
func NewRanker(k int) *Ranker {
	if k <= 0 {
		k = DefaultTopK
	}
	return &Ranker{
		k:       k,
		buckets: make(map[string][]domain.RankedEntry),
	}
}

// K returns the number of entries kept per bucket.
func (r *Ranker) K() int {
	return r.k
}

// Insert appends an entry to a bucket.
func (r *Ranker) Insert(bucket string, entry domain.RankedEntry) {
	r.buckets[bucket] = append(r.buckets[bucket], entry)
}

// Len returns how many entries were inserted into a bucket.
func (r *Ranker) Len(bucket string) int {
	return len(r.buckets[bucket])
}

// Finalize returns at most K entries of a bucket, ascending by total price.
//
// Behavior:
//   - Returns an empty, non-nil slice for an unknown or empty bucket
//   - Ties keep insertion order (stable sort)
//   - Does NOT mutate the stored entries, so calling it again gives the same result
func (r *Ranker) Finalize(bucket string) []domain.RankedEntry {
	entries := r.buckets[bucket]

	sorted := make([]domain.RankedEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offer.TotalPrice.LessThan(sorted[j].Offer.TotalPrice)
	})

	if len(sorted) > r.k {
		sorted = sorted[:r.k]
	}
	return sorted
}
