package bind

import (
	"fmt"
	"sync"
	"testing"

	interpguard "github.com/wippyai/interp-guard"
)

// testLock instruments a StateLock with a held flag and release/restore
// counters. Counters are only mutated while the underlying mutex is held,
// so they are safe to read once all callers have finished.
type testLock struct {
	mu       sync.Mutex
	held     bool
	releases int
	restores int
}

// acquire takes the lock the way an interpreter thread would before
// invoking a wrapped callable.
func (l *testLock) acquire() {
	l.mu.Lock()
	l.held = true
}

// relinquish gives the lock back after the wrapped call returned.
func (l *testLock) relinquish() {
	l.held = false
	l.mu.Unlock()
}

func (l *testLock) Release() interpguard.Token {
	l.held = false
	l.releases++
	l.mu.Unlock()
	return interpguard.NewToken(l)
}

func (l *testLock) Restore(t interpguard.Token) {
	l.mu.Lock()
	l.held = true
	l.restores++
}

func TestGuardedPreservesResultsAcrossArities(t *testing.T) {
	l := &testLock{}

	f0 := func() int { return 42 }
	f1 := func(a int) int { return a * 2 }
	f2 := func(a, b int) int { return a + b }
	f3 := func(a, b, c string) string { return a + b + c }
	f4 := func(a, b, c, d int) int { return a*b + c*d }

	w0, err := Guarded(l, f0)
	if err != nil {
		t.Fatalf("wrap f0: %v", err)
	}
	w1, err := Guarded(l, f1)
	if err != nil {
		t.Fatalf("wrap f1: %v", err)
	}
	w2, err := Guarded(l, f2)
	if err != nil {
		t.Fatalf("wrap f2: %v", err)
	}
	w3, err := Guarded(l, f3)
	if err != nil {
		t.Fatalf("wrap f3: %v", err)
	}
	w4, err := Guarded(l, f4)
	if err != nil {
		t.Fatalf("wrap f4: %v", err)
	}

	l.acquire()
	if got := w0.(func() int)(); got != f0() {
		t.Errorf("arity 0: got %d, want %d", got, f0())
	}
	if got := w1.(func(int) int)(21); got != f1(21) {
		t.Errorf("arity 1: got %d, want %d", got, f1(21))
	}
	if got := w2.(func(int, int) int)(2, 3); got != 5 {
		t.Errorf("arity 2: got %d, want 5", got)
	}
	if got := w3.(func(string, string, string) string)("a", "b", "c"); got != "abc" {
		t.Errorf("arity 3: got %q, want %q", got, "abc")
	}
	if got := w4.(func(int, int, int, int) int)(2, 3, 4, 5); got != f4(2, 3, 4, 5) {
		t.Errorf("arity 4: got %d, want %d", got, f4(2, 3, 4, 5))
	}
	l.relinquish()

	if l.releases != 5 || l.restores != 5 {
		t.Fatalf("got %d releases, %d restores, want 5/5", l.releases, l.restores)
	}
}

func TestGuardedReleasesLockDuringCall(t *testing.T) {
	l := &testLock{}

	heldInside := true
	wrapped, err := Guarded(l, func(a, b int) int {
		heldInside = l.held
		return a + b
	})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	add := wrapped.(func(int, int) int)

	l.acquire()
	got := add(2, 3)
	heldAfter := l.held
	l.relinquish()

	if got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	if heldInside {
		t.Error("lock still held inside the wrapped call")
	}
	if !heldAfter {
		t.Error("lock not restored before the wrapped call returned")
	}
	if l.releases != 1 || l.restores != 1 {
		t.Fatalf("got %d releases, %d restores, want 1/1", l.releases, l.restores)
	}
}

func TestGuardedPropagatesPanicAndRestores(t *testing.T) {
	l := &testLock{}

	boom := fmt.Errorf("runtime failure: x")
	wrapped, err := Guarded(l, func() { panic(boom) })
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	fn := wrapped.(func())

	l.acquire()
	func() {
		defer func() {
			if r := recover(); r != boom {
				t.Fatalf("recovered %v, want %v", r, boom)
			}
		}()
		fn()
	}()
	if !l.held {
		t.Error("lock not restored on the panic path")
	}
	l.relinquish()

	if l.releases != 1 || l.restores != 1 {
		t.Fatalf("got %d releases, %d restores, want 1/1", l.releases, l.restores)
	}
}

func TestGuardedRejectsUnsupportedShapes(t *testing.T) {
	l := &testLock{}

	if _, err := Guarded(l, 42); err == nil {
		t.Error("expected error wrapping a non-function")
	}
	if _, err := Guarded(l, nil); err == nil {
		t.Error("expected error wrapping nil")
	}
	if _, err := Guarded(l, func(args ...int) {}); err == nil {
		t.Error("expected error wrapping a variadic function")
	}
	if _, err := Guarded(l, func(a, b, c, d, e int) {}); err == nil {
		t.Error("expected error wrapping an arity-5 function")
	}
}

func TestGuardedConcurrentInvocationsPairExactly(t *testing.T) {
	l := &testLock{}

	wrapped, err := Guarded(l, func(a int) int { return a + 1 })
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	inc := wrapped.(func(int) int)

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				l.acquire()
				if got := inc(i); got != i+1 {
					t.Errorf("got %d, want %d", got, i+1)
				}
				l.relinquish()
			}
		}()
	}
	wg.Wait()

	want := goroutines * perGoroutine
	if l.releases != want || l.restores != want {
		t.Fatalf("got %d releases, %d restores, want %d/%d", l.releases, l.restores, want, want)
	}
}

func TestGuardedMethodReceiverFirst(t *testing.T) {
	l := &testLock{}

	fn, err := MethodOf(&counter{}, "Add")
	if err != nil {
		t.Fatalf("method of: %v", err)
	}
	wrapped, err := Guarded(l, fn)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	add := wrapped.(func(*counter, int) int)

	c := &counter{base: 10}
	l.acquire()
	got := add(c, 5)
	l.relinquish()

	if got != 15 {
		t.Errorf("got %d, want 15", got)
	}
	if l.releases != 1 || l.restores != 1 {
		t.Fatalf("got %d releases, %d restores, want 1/1", l.releases, l.restores)
	}
}
