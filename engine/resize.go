package engine

// Resize sets the file's logical size to newSize, truncating or
// zero-extending its chain.
//
// Shrinking repairs every descriptor on the file whose offset now points
// past the end, repositioning it to the new end. Growing cannot invalidate
// a cursor, so no fix-up runs on that path. A mid-grow allocation failure
// leaves the growth applied so far in place and the logical size
// unchanged.
func (e *Engine) Resize(fd int, newSize int64) error {
	e.begin()
	d, err := e.getDescriptor(fd)
	if err != nil {
		return e.fail(err)
	}
	if !d.flags.canWrite() {
		return e.fail(ErrPermissionDenied)
	}
	if newSize < 0 {
		newSize = 0
	}
	if newSize > MaxFileSize {
		return e.fail(ErrSizeLimitExceeded)
	}

	f := d.file
	switch {
	case newSize < f.size:
		e.shrink(f, newSize)
		// >= catches cursors parked at the start of a truncated block
		// (offset == newSize on a block boundary, or 0 when the whole
		// chain was freed); their offset is already right but the block
		// they point at is gone.
		for _, od := range e.table {
			if od != nil && od.file == f && od.offset >= newSize {
				e.position(od, newSize)
			}
		}
	case newSize > f.size:
		if err := e.grow(f, newSize); err != nil {
			return e.fail(err)
		}
	}
	f.size = newSize
	return nil
}

// shrink truncates f's chain to exactly newSize occupied bytes. Requires
// newSize < f.size; shrinking to zero frees the whole chain.
func (e *Engine) shrink(f *file, newSize int64) {
	if newSize == 0 {
		e.freeChain(f)
		return
	}
	id := f.head
	remaining := newSize
	for {
		blk := e.arena.get(id)
		if remaining <= int64(blk.occupied) {
			blk.occupied = int(remaining)
			break
		}
		remaining -= int64(blk.occupied)
		id = blk.next
	}
	e.truncateAfter(f, id)
}

// grow zero-extends f to newSize: first the unused capacity of the current
// tail (which may hold stale bytes from an earlier shrink), then fully
// zeroed appended blocks.
func (e *Engine) grow(f *file, newSize int64) error {
	toAdd := newSize - f.size
	if f.head == nilBlock {
		if _, err := e.appendBlock(f); err != nil {
			return err
		}
	}
	blk := e.arena.get(f.tail)
	if blk.occupied < BlockSize {
		fill := int64(BlockSize - blk.occupied)
		if fill > toAdd {
			fill = toAdd
		}
		clear(blk.buf[blk.occupied : blk.occupied+int(fill)])
		blk.occupied += int(fill)
		toAdd -= fill
	}
	for toAdd > 0 {
		id, err := e.appendBlock(f)
		if err != nil {
			return err
		}
		nb := e.arena.get(id)
		nb.occupied = BlockSize
		if toAdd < BlockSize {
			nb.occupied = int(toAdd)
		}
		toAdd -= int64(nb.occupied)
	}
	return nil
}
