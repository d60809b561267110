package parallel

import (
	"errors"
	"sync"
	"testing"
)

func TestWriteTracker_Create(t *testing.T) {
	if NewWriteTracker(0) != nil || NewWriteTracker(-1) != nil {
		t.Error("NewWriteTracker with non-positive size should return nil")
	}
	if got := NewWriteTracker(9).Len(); got != 9 {
		t.Errorf("Len() = %d, want 9", got)
	}
}

func TestWriteTracker_VerifyExactCover(t *testing.T) {
	tr := NewWriteTracker(4)
	for i := range 4 {
		tr.Record(i)
	}
	tr.Record(10) // out of range, ignored
	tr.Record(-1)

	if err := tr.Verify(); err != nil {
		t.Errorf("Verify() = %v, want nil", err)
	}
}

func TestWriteTracker_VerifyGapsAndDuplicates(t *testing.T) {
	tr := NewWriteTracker(6)
	tr.Record(0)
	tr.Record(2)
	tr.Record(2)
	tr.Record(3)
	tr.Record(5)
	tr.Record(5)
	tr.Record(5)

	err := tr.Verify()
	var cerr *CoverageError
	if !errors.As(err, &cerr) {
		t.Fatalf("Verify() = %v, want *CoverageError", err)
	}
	if cerr.Gaps != 2 || cerr.FirstGap != 1 {
		t.Errorf("gaps = %d (first %d), want 2 (first 1)", cerr.Gaps, cerr.FirstGap)
	}
	if cerr.Duplicates != 2 || cerr.FirstDuplicate != 2 {
		t.Errorf("duplicates = %d (first %d), want 2 (first 2)", cerr.Duplicates, cerr.FirstDuplicate)
	}
	if tr.Count(5) != 3 {
		t.Errorf("Count(5) = %d, want 3", tr.Count(5))
	}
}

func TestWriteTracker_ConcurrentRecord(t *testing.T) {
	const n, goroutines = 1000, 8
	tr := NewWriteTracker(n)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := g; i < n; i += goroutines {
				tr.Record(i)
			}
		}()
	}
	wg.Wait()

	if err := tr.Verify(); err != nil {
		t.Errorf("Verify() = %v, want nil", err)
	}
}
