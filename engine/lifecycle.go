package engine

// Open resolves or creates the named file and returns a new handle whose
// cursor sits at offset 0 on the file's current chain head.
//
// When any allocation along the way fails, the pre-call state is restored
// exactly: a file created by this very call is unlinked and destroyed
// again, a pre-existing file is left alone.
func (e *Engine) Open(name string, flags OpenFlag) (int, error) {
	e.begin()
	if flags&modeMask == 0 {
		flags |= ReadWrite
	}

	f := e.findFile(name)
	created := false
	if f == nil {
		if flags&Create == 0 {
			return -1, e.fail(ErrNoSuchFile)
		}
		var err error
		f, err = e.createFile(name)
		if err != nil {
			return -1, e.fail(err)
		}
		created = true
	}

	if !e.tryCharge(descriptorCharge) {
		if created {
			e.unlinkFile(f)
			e.destroyIfOrphaned(f)
		}
		return -1, e.fail(ErrOutOfMemory)
	}
	d := &descriptor{
		file:  f,
		block: f.head,
		flags: flags,
	}

	f.refs++
	fd, err := e.allocSlot(d)
	if err != nil {
		f.refs--
		e.releaseCharge(descriptorCharge)
		if created {
			e.unlinkFile(f)
			e.destroyIfOrphaned(f)
		}
		return -1, e.fail(err)
	}
	return fd, nil
}

// Close releases a handle. If the bound file was deleted while open and
// this was its last descriptor, the deferred destruction completes here.
func (e *Engine) Close(fd int) error {
	e.begin()
	d, err := e.getDescriptor(fd)
	if err != nil {
		return e.fail(err)
	}

	d.file.refs--
	e.destroyIfOrphaned(d.file)

	e.releaseSlot(fd)
	e.releaseCharge(descriptorCharge)
	return nil
}

// Delete unlinks the named file from the registry. The name is free for an
// unrelated Open(..., Create) immediately; the storage is freed now if no
// descriptor holds the file, otherwise at the last Close.
func (e *Engine) Delete(name string) error {
	e.begin()
	f := e.findFile(name)
	if f == nil {
		return e.fail(ErrNoSuchFile)
	}
	e.unlinkFile(f)
	e.destroyIfOrphaned(f)
	return nil
}
