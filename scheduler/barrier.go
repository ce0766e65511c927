package scheduler

import "sync"

// Barrier is a reusable phase barrier. Wait blocks until threshold
// goroutines have arrived, then releases them all and resets for the next
// phase. The generation counter keeps a fast arriver in phase k+1 from
// slipping past a slow one still waking up from phase k.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	count      int
	threshold  int
	generation int
}

// NewBarrier returns a barrier releasing once threshold goroutines wait.
func NewBarrier(threshold int) *Barrier {
	b := &Barrier{threshold: threshold}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks the caller until all participants of the current phase arrive.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.count++

	if b.count == b.threshold {
		b.count = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}
