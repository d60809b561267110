package parallel

import "sync/atomic"

// WriteTracker counts writes per buffer index to check the disjoint-write invariant.
//
// Record is a lock-free atomic increment, so the tracker can sit in the render
// path of every worker. After the pass, Verify reports any index that was written
// zero times or more than once.
//
// Thread safety: all methods are safe for concurrent use.
type WriteTracker struct {
	counts []atomic.Uint32
}

// NewWriteTracker creates a tracker for n indices.
// Returns nil if n is not positive.
func NewWriteTracker(n int) *WriteTracker {
	if n <= 0 {
		return nil
	}
	return &WriteTracker{counts: make([]atomic.Uint32, n)}
}

// Len returns the number of tracked indices.
func (t *WriteTracker) Len() int {
	return len(t.counts)
}

// Record counts one write to index i. Out-of-range indices are ignored.
func (t *WriteTracker) Record(i int) {
	if i < 0 || i >= len(t.counts) {
		return
	}
	t.counts[i].Add(1)
}

// Count returns the number of writes recorded for index i.
func (t *WriteTracker) Count(i int) uint32 {
	if i < 0 || i >= len(t.counts) {
		return 0
	}
	return t.counts[i].Load()
}

// Verify returns nil when every index was written exactly once,
// and a *CoverageError otherwise.
func (t *WriteTracker) Verify() error {
	e := CoverageError{FirstGap: -1, FirstDuplicate: -1}
	for i := range t.counts {
		switch n := t.counts[i].Load(); {
		case n == 0:
			if e.Gaps == 0 {
				e.FirstGap = i
			}
			e.Gaps++
		case n > 1:
			if e.Duplicates == 0 {
				e.FirstDuplicate = i
			}
			e.Duplicates++
		}
	}
	if e.Gaps == 0 && e.Duplicates == 0 {
		return nil
	}
	return &e
}
