package arena

import (
	"container/heap"
	"sync"
)

// Stack is a bump allocator over one contiguous region. Allocation bumps a
// monotone offset; deallocation is eager only when it frees the
// most-recently-allocated block still live: freeing an arbitrary block
// just records its end offset, and the bump pointer only rewinds once the
// freed set's largest end offset catches up with it.
//
// The free-offset priority queue is a container/heap max-heap (ordered by
// end offset, largest first). Largest-first, not smallest-first: the bump
// pointer only ever retreats toward zero, so the next block eligible for
// reclamation is always the one whose end offset is closest to (and, when
// eligible, equal to) the current offset from below — the heap's largest
// live entry, not its smallest.
type Stack struct {
	mu     sync.Mutex
	buf    []uint64
	offset int
	marks  []int // pre-allocation offsets, one per live allocation
	freed  endOffsetHeap
}

// NewStack allocates a region of the given word size.
func NewStack(size int) *Stack {
	return &Stack{buf: make([]uint64, size)}
}

// Alloc bumps the offset and returns a block, or false if the region is
// exhausted. There is no alignment parameter: every block here holds
// uint64 words, so the region is already word-aligned throughout.
func (s *Stack) Alloc(words int) (Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := s.offset
	end := start + words
	if end > len(s.buf) {
		return Block{}, false
	}
	s.marks = append(s.marks, start)
	s.offset = end
	region := s.buf[start:end]
	for i := range region {
		region[i] = 0
	}
	return Block{Words: region, Off: end}, true
}

// Free records the freed block's end offset and rewinds the bump pointer
// while the heap's maximum matches the current offset.
func (s *Stack) Free(b Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.freed, b.Off)
	for len(s.freed) > 0 && s.freed[0] == s.offset {
		heap.Pop(&s.freed)
		n := len(s.marks)
		s.offset = s.marks[n-1]
		s.marks = s.marks[:n-1]
	}
}

// endOffsetHeap is a max-heap of freed block end offsets: the largest
// pending end offset is always the next candidate for reclamation, since
// the bump pointer only ever rewinds downward from its current position.
type endOffsetHeap []int

func (h endOffsetHeap) Len() int            { return len(h) }
func (h endOffsetHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h endOffsetHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *endOffsetHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *endOffsetHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
