// Package spin provides a busy-wait mutual exclusion lock for code that has no scheduler to
// park on: early kernel paths, interrupt-adjacent code, single-core bare-metal runtimes.
package spin

import (
	"runtime"
	"sync/atomic"
)

// spinsBeforeYield bounds pure spinning before handing the processor to other goroutines.
// On a single-P runtime the holder cannot progress until the waiter yields.
const spinsBeforeYield = 64

// Mutex is a test-and-test-and-set spin lock. The zero value is unlocked.
// A Mutex must not be copied after first use.
type Mutex struct {
	_      noCopy
	locked atomic.Bool
}

// Lock acquires m, burning cycles until it is free. Never parks the calling thread.
func (m *Mutex) Lock() {
	for spins := 0; ; spins++ {
		if !m.locked.Load() && m.locked.CompareAndSwap(false, true) {
			return
		}
		if spins >= spinsBeforeYield {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock acquires m if it is free and reports whether it did
func (m *Mutex) TryLock() bool {
	return !m.locked.Load() && m.locked.CompareAndSwap(false, true)
}

// Unlock releases m. Unlocking an unlocked Mutex is a fatal bug in the caller.
func (m *Mutex) Unlock() {
	if !m.locked.CompareAndSwap(true, false) {
		panic("spin: unlock of unlocked mutex")
	}
}

// noCopy flags copies to go vet's copylocks check
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
