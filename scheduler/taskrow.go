package scheduler

import (
	"sync"

	"github.com/XIBRO7247/CSC4010-Coursework-1/deque"
	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
	"github.com/XIBRO7247/CSC4010-Coursework-1/search"
)

// TaskPerRow enqueues one task per line across per-worker work-stealing
// deques. Workers drain their own deque newest-first and steal oldest-first
// from the others when it runs dry. Each task is self-contained: it counts
// into its own vector, which the worker folds into its partial, so execution
// order is free while the merged totals stay equal to the sequential run.
type TaskPerRow struct {
	Threads int
}

func (TaskPerRow) Name() string { return ScheduleTasks }

func (d TaskPerRow) Run(img *rawimage.Image, pal search.Palette) search.Counter {
	lines := img.Lines()
	n := workerCount(d.Threads, lines)
	master := search.NewCounter(pal)
	if n <= 1 || lines == 0 {
		for _, line := range img.Pixels {
			processLine(line, pal, master)
		}
		return master
	}

	queues := make([]*deque.Deque, n)
	for w := range queues {
		queues[w] = deque.New((lines + n - 1) / n)
	}
	for l := 0; l < lines; l++ {
		queues[l%n].Push(l)
	}

	partials := make([]search.Counter, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func(w int) {
			defer wg.Done()
			local := search.NewCounter(pal)
			for {
				l, ok := queues[w].Pop()
				if !ok {
					if l, ok = stealLine(w, queues); !ok {
						break
					}
				}
				task := search.NewCounter(pal)
				processLine(img.Pixels[l], pal, task)
				local.Merge(task)
			}
			partials[w] = local
		}(w)
	}
	wg.Wait()

	for _, p := range partials {
		master.Merge(p)
	}
	return master
}

// stealLine takes the oldest task from the first victim that has one.
func stealLine(thief int, queues []*deque.Deque) (int, bool) {
	for v := range queues {
		if v == thief {
			continue
		}
		if l, ok := queues[v].Steal(); ok {
			return l, true
		}
	}
	return 0, false
}
