package blockfs

import (
	"errors"
	"io"
)

// File adapts a handle to the standard io interfaces. It is a thin
// wrapper: the cursor lives in the underlying descriptor, so a File and
// the raw handle APIs may be mixed freely on the same fd.
type File struct {
	fs     *FS
	fd     int
	name   string
	closed bool
}

// OpenFile opens name and wraps the handle in a File.
func (fs *FS) OpenFile(name string, flags OpenFlag) (*File, error) {
	fd, err := fs.Open(name, flags)
	if err != nil {
		return nil, err
	}
	return &File{fs: fs, fd: fd, name: name}, nil
}

// Name returns the name the file was opened with.
func (f *File) Name() string { return f.name }

// Fd returns the underlying handle.
func (f *File) Fd() int { return f.fd }

// Size returns the file's current logical size.
func (f *File) Size() (int64, error) {
	if f.closed {
		return -1, ErrNoSuchFile
	}
	size, err := f.fs.engine.FileSize(f.fd)
	return size, translateError(err)
}

// Read implements io.Reader. End of file is reported as io.EOF.
func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrNoSuchFile
	}
	n, err := f.fs.Read(f.fd, p)
	if err != nil {
		return n, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements io.Writer. Unlike the handle API, a short write caused
// by budget exhaustion is surfaced as an error, per the io.Writer
// contract.
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrNoSuchFile
	}
	n, err := f.fs.Write(f.fd, p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, ErrOutOfMemory
	}
	return n, nil
}

// Seek implements io.Seeker. The resulting offset is clamped to
// [0, file size]; seeking past the end therefore lands at the end rather
// than creating a hole.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return -1, ErrNoSuchFile
	}
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		cur, err := f.fs.engine.Tell(f.fd)
		if err != nil {
			return -1, translateError(err)
		}
		base = cur
	case io.SeekEnd:
		size, err := f.fs.engine.FileSize(f.fd)
		if err != nil {
			return -1, translateError(err)
		}
		base = size
	default:
		return -1, errors.New("blockfs: invalid whence")
	}
	return f.fs.Seek(f.fd, base+offset)
}

// Close releases the handle. Closing twice is an error.
func (f *File) Close() error {
	if f.closed {
		return ErrNoSuchFile
	}
	f.closed = true
	return f.fs.CloseFd(f.fd)
}
