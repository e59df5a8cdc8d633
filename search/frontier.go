package search

import (
	"container/heap"

	"github.com/gridquest/gridquest/game"
)

// frontier is a max-heap of states ordered by EvaluatedScore. Ties are
// broken arbitrarily by heap layout; callers must not rely on any
// tie-break beyond score equality.
type frontier []*game.State

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].EvaluatedScore > f[j].EvaluatedScore }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*game.State))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return s
}

func (f *frontier) push(s *game.State) {
	heap.Push(f, s)
}

func (f *frontier) pop() *game.State {
	return heap.Pop(f).(*game.State)
}

// peek returns the best state without removing it. Caller checks Len.
func (f frontier) peek() *game.State {
	return f[0]
}
