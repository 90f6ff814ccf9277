package engine

// block is one fixed-capacity storage unit. buf holds BlockSize bytes;
// occupied counts the meaningful bytes from the start. prev/next are arena
// indices forming the owning file's chain.
type block struct {
	buf      []byte
	occupied int
	prev     int32
	next     int32
}

// blockArena owns every block in the engine, addressed by stable indices.
// Released indices go on a free list and are reused; the backing slice
// never shrinks. Index-based links make truncation safe: a stale index in
// a descriptor can never dangle into freed memory, only into a slot the
// resize fix-up has already repaired.
type blockArena struct {
	blocks []block
	free   []int32
	inUse  int
}

func (a *blockArena) get(id int32) *block {
	return &a.blocks[id]
}

// alloc returns the index of a fresh zeroed block. The caller has already
// charged the memory budget; alloc itself cannot fail.
func (a *blockArena) alloc() int32 {
	var id int32
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.blocks = append(a.blocks, block{})
		id = int32(len(a.blocks) - 1)
	}
	blk := &a.blocks[id]
	blk.buf = make([]byte, BlockSize)
	blk.occupied = 0
	blk.prev = nilBlock
	blk.next = nilBlock
	a.inUse++
	return id
}

// release returns a block to the free list and drops its buffer.
func (a *blockArena) release(id int32) {
	blk := &a.blocks[id]
	blk.buf = nil
	blk.occupied = 0
	blk.prev = nilBlock
	blk.next = nilBlock
	a.free = append(a.free, id)
	a.inUse--
}

func (a *blockArena) reset() {
	a.blocks = nil
	a.free = nil
	a.inUse = 0
}
