// Package deque implements a lock-free work-stealing deque of line indices
// in the Chase-Lev style. The owning worker pushes and pops at the bottom;
// thieves steal from the top, so stolen work comes out oldest-first. Every
// index is handed out exactly once: when owner and thief race for the last
// element, a compare-and-swap on top decides the winner.
package deque

import "sync/atomic"

// Deque holds up to its initial capacity of line indices. Push is owner-only;
// Pop and Steal may run concurrently with each other.
type Deque struct {
	items  []int64
	top    atomic.Int64
	bottom atomic.Int64
}

// New returns an empty deque able to hold capacity line indices.
func New(capacity int) *Deque {
	return &Deque{items: make([]int64, capacity)}
}

// Push appends a line index at the owner's end. Must not run concurrently
// with Pop on the same deque.
func (d *Deque) Push(line int) {
	b := d.bottom.Load()
	d.items[b] = int64(line)
	d.bottom.Store(b + 1)
}

// Pop removes the most recently pushed line index (owner's end).
func (d *Deque) Pop() (int, bool) {
	b := d.bottom.Load() - 1
	d.bottom.Store(b)
	t := d.top.Load()

	if t > b {
		// already empty; undo the reservation
		d.bottom.Store(t)
		return 0, false
	}

	line := d.items[b]
	if t == b {
		// last element: race the thieves for it
		won := d.top.CompareAndSwap(t, t+1)
		d.bottom.Store(t + 1)
		if !won {
			return 0, false
		}
	}
	return int(line), true
}

// Steal removes the oldest line index (thief's end).
func (d *Deque) Steal() (int, bool) {
	for {
		t := d.top.Load()
		b := d.bottom.Load()
		if t >= b {
			return 0, false
		}
		line := d.items[t]
		if d.top.CompareAndSwap(t, t+1) {
			return int(line), true
		}
		// lost to another thief or the owner, retry
	}
}

// IsEmpty reports whether the deque currently holds no work.
func (d *Deque) IsEmpty() bool {
	return d.top.Load() >= d.bottom.Load()
}
