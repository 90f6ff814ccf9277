package engine

// allocSlot places d in the first empty table slot, growing the table by
// doubling (from initialTableCap) when it is full. Growth is charged
// against the memory budget; a failed charge leaves the table untouched.
func (e *Engine) allocSlot(d *descriptor) (int, error) {
	if e.open == cap(e.table) {
		newCap := initialTableCap
		if cap(e.table) > 0 {
			newCap = cap(e.table) * 2
		}
		if !e.tryCharge(int64(newCap-cap(e.table)) * slotCharge) {
			return -1, ErrOutOfMemory
		}
		grown := make([]*descriptor, newCap)
		copy(grown, e.table)
		e.table = grown
	}
	e.table = e.table[:cap(e.table)]
	// First fit keeps handles dense and makes freed handles reusable.
	for fd := range e.table {
		if e.table[fd] == nil {
			e.table[fd] = d
			e.open++
			return fd, nil
		}
	}
	// Unreachable: e.open < cap(e.table) guarantees an empty slot.
	return -1, ErrOutOfMemory
}

// getDescriptor validates a handle. Invalid and closed handles both report
// ErrNoSuchFile.
func (e *Engine) getDescriptor(fd int) (*descriptor, error) {
	if fd < 0 || fd >= len(e.table) || e.table[fd] == nil {
		return nil, ErrNoSuchFile
	}
	return e.table[fd], nil
}

// releaseSlot frees a handle for reuse. It does not touch the bound file;
// the lifecycle code owns that decision.
func (e *Engine) releaseSlot(fd int) {
	e.table[fd] = nil
	e.open--
}
