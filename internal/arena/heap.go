package arena

// Heap is a trivial Allocator backed directly by the Go runtime's own heap:
// every Alloc is a fresh make([]uint64, words) and Free is a no-op left to
// the garbage collector. It satisfies the same Allocator contract as Pool
// and Stack so code that doesn't sit on the steady-state hot path (the
// engine's unit tests, which want throwaway clauses) can share code with the
// arena-backed ones without caring which allocator it was handed.
type Heap struct{}

func (Heap) Alloc(words int) (Block, bool) {
	return Block{Words: make([]uint64, words), Off: -1}, true
}

func (Heap) Free(Block) {}
