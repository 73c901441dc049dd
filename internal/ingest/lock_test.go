package ingest

import (
	"sync"
	"testing"
)

func TestBrandLocksSerializeSameKey(t *testing.T) {
	locks := newBrandLocks()

	var inside int
	var max int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.acquire("same-brand")
			defer unlock()

			mu.Lock()
			inside++
			if inside > max {
				max = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if max != 1 {
		t.Fatalf("expected at most one holder per key, saw %d", max)
	}
}

func TestBrandLocksIndependentKeys(t *testing.T) {
	locks := newBrandLocks()

	unlockA := locks.acquire("brand-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.acquire("brand-b")
		unlockB()
		close(done)
	}()

	<-done // other key must not block behind brand-a
}
