package engine

// MemoryAcquirer is the slice of the resource controller the engine needs:
// a non-blocking budget reservation. A nil acquirer means no limit.
type MemoryAcquirer interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

// Engine is one independent instance of the block-chained store. It owns
// its registry, arena, descriptor table, and last-error slot; multiple
// engines coexist without shared state.
//
// Engines are not safe for concurrent use. The caller serializes access.
type Engine struct {
	mem      MemoryAcquirer
	arena    blockArena
	files    []*file
	table    []*descriptor
	open     int
	reserved int64
	lastErr  error
}

// New creates an empty engine. mem may be nil for an unlimited budget.
func New(mem MemoryAcquirer) *Engine {
	return &Engine{mem: mem}
}

// LastError returns the error recorded by the most recent public
// operation, or nil if it succeeded. It has no side effects.
func (e *Engine) LastError() error { return e.lastErr }

// begin resets the last-error slot; every public operation calls it first.
func (e *Engine) begin() { e.lastErr = nil }

// fail records err in the last-error slot and returns it.
func (e *Engine) fail(err error) error {
	e.lastErr = err
	return err
}

func (e *Engine) tryCharge(n int64) bool {
	if e.mem != nil && !e.mem.TryAcquireMemory(n) {
		return false
	}
	e.reserved += n
	return true
}

func (e *Engine) releaseCharge(n int64) {
	if e.mem != nil {
		e.mem.ReleaseMemory(n)
	}
	e.reserved -= n
}

// Stats reports current resource usage.
func (e *Engine) Stats() Stats {
	return Stats{
		Files:           len(e.files),
		OpenDescriptors: e.open,
		BlocksInUse:     e.arena.inUse,
		BytesReserved:   e.reserved,
	}
}

// Destroy releases every file, block, and descriptor and resets the engine
// to its initial empty state. The engine is reusable afterwards.
func (e *Engine) Destroy() {
	for _, f := range e.files {
		e.freeChain(f)
		e.releaseCharge(fileCharge)
	}
	for fd, d := range e.table {
		if d == nil {
			continue
		}
		// Orphaned files are reachable only through descriptors.
		d.file.refs--
		if d.file.refs == 0 && !d.file.registered {
			e.freeChain(d.file)
			e.releaseCharge(fileCharge)
		}
		e.table[fd] = nil
		e.releaseCharge(descriptorCharge)
	}
	e.releaseCharge(int64(cap(e.table)) * slotCharge)
	e.files = nil
	e.table = nil
	e.open = 0
	e.arena.reset()
	e.lastErr = nil
}

// findFile scans the registry. Linear scan is deliberate: registries at
// this scale never grow past a handful of entries.
func (e *Engine) findFile(name string) *file {
	for _, f := range e.files {
		if f.name == name {
			return f
		}
	}
	return nil
}

// createFile inserts a new zero-size file at the head of the registry.
func (e *Engine) createFile(name string) (*file, error) {
	if !e.tryCharge(fileCharge) {
		return nil, ErrOutOfMemory
	}
	f := &file{
		name:       name,
		head:       nilBlock,
		tail:       nilBlock,
		registered: true,
	}
	e.files = append(e.files, nil)
	copy(e.files[1:], e.files)
	e.files[0] = f
	return f, nil
}

// unlinkFile removes f from the registry without touching its storage or
// reference count. Destruction is the caller's decision.
func (e *Engine) unlinkFile(f *file) {
	for i, g := range e.files {
		if g == f {
			e.files = append(e.files[:i], e.files[i+1:]...)
			break
		}
	}
	f.registered = false
}

// destroyIfOrphaned completes deferred destruction: it frees f's chain and
// accounting once f is both unregistered and unreferenced. Called after
// every refcount decrement and after every unlink.
func (e *Engine) destroyIfOrphaned(f *file) {
	if f.registered || f.refs > 0 {
		return
	}
	e.freeChain(f)
	e.releaseCharge(fileCharge)
}

func (e *Engine) freeChain(f *file) {
	for id := f.head; id != nilBlock; {
		next := e.arena.get(id).next
		e.arena.release(id)
		e.releaseCharge(blockCharge)
		id = next
	}
	f.head = nilBlock
	f.tail = nilBlock
	f.size = 0
}

// appendBlock allocates a zeroed block and links it at f's tail. On budget
// exhaustion the chain is left unmodified.
func (e *Engine) appendBlock(f *file) (int32, error) {
	if !e.tryCharge(blockCharge) {
		return nilBlock, ErrOutOfMemory
	}
	id := e.arena.alloc()
	if f.tail == nilBlock {
		f.head = id
		f.tail = id
	} else {
		e.arena.get(f.tail).next = id
		e.arena.get(id).prev = f.tail
		f.tail = id
	}
	return id, nil
}

// truncateAfter frees every block strictly after id, making it the chain's
// new tail.
func (e *Engine) truncateAfter(f *file, id int32) {
	blk := e.arena.get(id)
	next := blk.next
	blk.next = nilBlock
	f.tail = id
	for next != nilBlock {
		n := e.arena.get(next).next
		e.arena.release(next)
		e.releaseCharge(blockCharge)
		next = n
	}
}
