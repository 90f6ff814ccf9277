package engine

// Write copies p into the file at the descriptor's cursor, extending the
// chain block by block as needed, and advances the cursor.
//
// A mid-write allocation failure is reported as a short write: the count
// of bytes that did land is returned with a nil error, and LastError
// reports ErrOutOfMemory. Only when nothing at all was written does Write
// return the error itself. A write that would push the cursor past
// MaxFileSize fails up front and changes nothing.
func (e *Engine) Write(fd int, p []byte) (int, error) {
	e.begin()
	d, err := e.getDescriptor(fd)
	if err != nil {
		return 0, e.fail(err)
	}
	if !d.flags.canWrite() {
		return 0, e.fail(ErrPermissionDenied)
	}
	if d.offset+int64(len(p)) > MaxFileSize {
		return 0, e.fail(ErrSizeLimitExceeded)
	}

	f := d.file
	if d.block == nilBlock && f.head != nilBlock {
		// The descriptor was opened on a then-empty file and another
		// descriptor has since grown the chain; bind to its head.
		d.block = f.head
		d.pos = 0
	}

	written := 0
	for written < len(p) {
		if d.block == nilBlock || d.pos >= BlockSize {
			if d.block != nilBlock && e.arena.get(d.block).next != nilBlock {
				d.block = e.arena.get(d.block).next
			} else {
				id, aerr := e.appendBlock(f)
				if aerr != nil {
					e.lastErr = aerr
					if written == 0 {
						return 0, aerr
					}
					break
				}
				d.block = id
			}
			d.pos = 0
		}

		blk := e.arena.get(d.block)
		n := copy(blk.buf[d.pos:], p[written:])
		d.pos += n
		if blk.occupied < d.pos {
			blk.occupied = d.pos
		}
		written += n
		d.offset += int64(n)
	}

	// Size is the maximum offset ever committed, short writes included.
	if d.offset > f.size {
		f.size = d.offset
	}
	return written, nil
}

// Read copies up to len(p) bytes from the cursor into p and advances the
// cursor. Running out of occupied bytes is end of file, reported as a
// short (possibly zero) count, never as an error.
func (e *Engine) Read(fd int, p []byte) (int, error) {
	e.begin()
	d, err := e.getDescriptor(fd)
	if err != nil {
		return 0, e.fail(err)
	}
	if !d.flags.canRead() {
		return 0, e.fail(ErrPermissionDenied)
	}

	f := d.file
	if f.head == nilBlock {
		return 0, nil
	}
	if d.block == nilBlock {
		d.block = f.head
		d.pos = 0
	}

	read := 0
	for read < len(p) {
		blk := e.arena.get(d.block)
		avail := blk.occupied - d.pos
		if avail <= 0 {
			if blk.next == nilBlock {
				break
			}
			d.block = blk.next
			d.pos = 0
			continue
		}
		n := avail
		if n > len(p)-read {
			n = len(p) - read
		}
		copy(p[read:], blk.buf[d.pos:d.pos+n])
		d.pos += n
		read += n
		d.offset += int64(n)
	}
	return read, nil
}

// Seek repositions the cursor to offset, clamped to [0, file size], and
// returns the resulting offset.
func (e *Engine) Seek(fd int, offset int64) (int64, error) {
	e.begin()
	d, err := e.getDescriptor(fd)
	if err != nil {
		return -1, e.fail(err)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > d.file.size {
		offset = d.file.size
	}
	e.position(d, offset)
	return d.offset, nil
}

// Tell returns the cursor's absolute offset.
func (e *Engine) Tell(fd int) (int64, error) {
	e.begin()
	d, err := e.getDescriptor(fd)
	if err != nil {
		return -1, e.fail(err)
	}
	return d.offset, nil
}

// FileSize returns the logical size of the file bound to fd.
func (e *Engine) FileSize(fd int) (int64, error) {
	e.begin()
	d, err := e.getDescriptor(fd)
	if err != nil {
		return -1, e.fail(err)
	}
	return d.file.size, nil
}

// position re-walks the chain from the start and points d at pos. It is
// the one place cursor state is rebuilt from scratch; Seek and the resize
// shrink fix-up both rely on it. pos must not exceed the file size.
func (e *Engine) position(d *descriptor, pos int64) {
	f := d.file
	d.block = f.head
	d.pos = 0
	d.offset = 0
	if f.head == nilBlock {
		return
	}
	for {
		blk := e.arena.get(d.block)
		if pos < int64(blk.occupied) {
			d.pos = int(pos)
			d.offset += pos
			return
		}
		if blk.next == nilBlock {
			d.pos = blk.occupied
			d.offset += int64(blk.occupied)
			return
		}
		pos -= int64(blk.occupied)
		d.offset += int64(blk.occupied)
		d.block = blk.next
	}
}
