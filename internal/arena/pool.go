package arena

import "sync"

// Pool is a fixed-layout allocator: every block has the same word count,
// fixed at construction, and the pool maintains a free list of block
// offsets into one contiguous backing region. It never fragments and every
// operation is O(1).
//
// Grounded on original_source/src/alloc.rs's PoolAlloc, which guards a
// []byte region and a free-list Vec<usize> behind a single Mutex; we follow
// that design (rather than alloc2.rs's lock-free atomic-counter variant,
// which depends on pointer arithmetic with no safe Go equivalent) in favor
// of a plain mutex over hand-rolled lock-freedom.
type Pool struct {
	mu        sync.Mutex
	blockSize int
	buf       []uint64
	free      []int // stack of block-start offsets
}

// NewPool allocates one region sized for capacity blocks of blockSize words
// each and seeds the free list with every block offset.
func NewPool(blockSize, capacity int) *Pool {
	p := &Pool{
		blockSize: blockSize,
		buf:       make([]uint64, blockSize*capacity),
		free:      make([]int, capacity),
	}
	for i := 0; i < capacity; i++ {
		p.free[i] = i * blockSize
	}
	return p
}

// Alloc returns a fresh block, or false if the request doesn't match the
// pool's fixed layout or the pool is exhausted.
func (p *Pool) Alloc(words int) (Block, bool) {
	if words != p.blockSize {
		return Block{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return Block{}, false
	}
	off := p.free[n-1]
	p.free = p.free[:n-1]
	words_ := p.buf[off : off+p.blockSize]
	for i := range words_ {
		words_[i] = 0
	}
	return Block{Words: words_, Off: off}, true
}

// Free returns a block to the pool.
func (p *Pool) Free(b Block) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, b.Off)
}

// Cap reports the pool's block capacity, mainly for diagnostics and tests.
func (p *Pool) Cap() int { return len(p.buf) / p.blockSize }
