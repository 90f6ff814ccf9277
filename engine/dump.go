package engine

import "fmt"

// Dump captures the name and full contents of every registered file, in
// registry order. Open descriptors and orphaned files are runtime state
// and are not captured. This is the export half of snapshotting; framing
// and compression live in the blockfs package.
func (e *Engine) Dump() []DumpedFile {
	out := make([]DumpedFile, 0, len(e.files))
	for _, f := range e.files {
		data := make([]byte, f.size)
		n := 0
		for id := f.head; id != nilBlock && n < len(data); id = e.arena.get(id).next {
			blk := e.arena.get(id)
			n += copy(data[n:], blk.buf[:blk.occupied])
		}
		out = append(out, DumpedFile{Name: f.name, Data: data})
	}
	return out
}

// Load creates a registered file holding data. It is the restore half of
// Dump and expects the name to be absent; an allocation failure rolls the
// partially built file back.
func (e *Engine) Load(name string, data []byte) error {
	e.begin()
	if e.findFile(name) != nil {
		return e.fail(fmt.Errorf("load %q: file already exists", name))
	}
	f, err := e.createFile(name)
	if err != nil {
		return e.fail(err)
	}
	for off := 0; off < len(data); off += BlockSize {
		id, aerr := e.appendBlock(f)
		if aerr != nil {
			e.unlinkFile(f)
			e.destroyIfOrphaned(f)
			return e.fail(aerr)
		}
		blk := e.arena.get(id)
		blk.occupied = copy(blk.buf, data[off:])
	}
	f.size = int64(len(data))
	return nil
}
