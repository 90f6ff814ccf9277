package blockfs

import (
	"time"

	"github.com/hupe1980/blockfs/engine"
)

// Re-exported engine contract: callers should not need to import the
// engine package for everyday use.
const (
	// BlockSize is the fixed capacity of a storage block in bytes.
	BlockSize = engine.BlockSize
	// MaxFileSize is the hard limit on a single file's logical size.
	MaxFileSize = engine.MaxFileSize
)

// OpenFlag controls Open behavior and the resulting descriptor's mode.
type OpenFlag = engine.OpenFlag

const (
	// Create creates the file if it does not exist.
	Create = engine.Create
	// ReadOnly restricts the descriptor to reads.
	ReadOnly = engine.ReadOnly
	// WriteOnly restricts the descriptor to writes.
	WriteOnly = engine.WriteOnly
	// ReadWrite allows both; the default when no mode flag is given.
	ReadWrite = engine.ReadWrite
)

// Stats is a snapshot of an FS's resource usage.
type Stats = engine.Stats

// FS is one independent in-memory file store.
//
// An FS is not safe for concurrent use; the caller serializes access.
// Multiple descriptors on the same file share its blocks directly: a write
// through one is immediately visible to a read through another, and
// overlapping writes are last-write-wins.
type FS struct {
	engine  *engine.Engine
	opts    options
	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty FS.
func New(optFns ...Option) *FS {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return &FS{
		engine:  engine.New(o.controller),
		opts:    o,
		metrics: o.metrics,
		logger:  o.logger,
	}
}

// Open resolves or creates name and returns a handle whose cursor sits at
// offset 0. Without Create, opening an unknown name fails ErrNoSuchFile.
// When no mode flag is given the descriptor is read-write.
func (fs *FS) Open(name string, flags OpenFlag) (int, error) {
	start := time.Now()
	fd, err := fs.engine.Open(name, flags)
	fs.metrics.RecordOpen(time.Since(start), err)
	fs.logger.WithName(name).logOp("open", err, "fd", fd)
	return fd, translateError(err)
}

// Read copies up to len(p) bytes from fd's cursor into p. A short or zero
// count means end of file, not an error.
func (fs *FS) Read(fd int, p []byte) (int, error) {
	start := time.Now()
	n, err := fs.engine.Read(fd, p)
	fs.metrics.RecordRead(n, time.Since(start), err)
	fs.logger.WithFd(fd).logOp("read", err, "n", n)
	return n, translateError(err)
}

// Write copies p to fd's cursor, growing the file as needed. When the
// memory budget runs out mid-write, Write returns the count that did land
// with a nil error (LastError reports ErrOutOfMemory); it returns an error
// only when nothing was written. A write that would exceed MaxFileSize
// fails ErrSizeLimitExceeded and changes nothing.
func (fs *FS) Write(fd int, p []byte) (int, error) {
	start := time.Now()
	n, err := fs.engine.Write(fd, p)
	fs.metrics.RecordWrite(n, time.Since(start), err)
	fs.logger.WithFd(fd).logOp("write", err, "n", n)
	return n, translateError(err)
}

// Seek repositions fd's cursor, clamped to [0, file size], and returns the
// resulting offset.
func (fs *FS) Seek(fd int, offset int64) (int64, error) {
	off, err := fs.engine.Seek(fd, offset)
	fs.logger.WithFd(fd).logOp("seek", err, "offset", off)
	return off, translateError(err)
}

// CloseFd releases a handle. If the file was deleted while open and this
// was its last descriptor, its storage is freed here.
func (fs *FS) CloseFd(fd int) error {
	start := time.Now()
	err := fs.engine.Close(fd)
	fs.metrics.RecordClose(time.Since(start), err)
	fs.logger.WithFd(fd).logOp("close", err)
	return translateError(err)
}

// Delete unlinks name. The name is immediately free for reuse; storage
// held open by descriptors survives until their last CloseFd.
func (fs *FS) Delete(name string) error {
	start := time.Now()
	err := fs.engine.Delete(name)
	fs.metrics.RecordDelete(time.Since(start), err)
	fs.logger.WithName(name).logOp("delete", err)
	return translateError(err)
}

// Resize truncates or zero-extends fd's file to newSize. Shrinking
// repositions every descriptor left pointing past the new end.
func (fs *FS) Resize(fd int, newSize int64) error {
	start := time.Now()
	err := fs.engine.Resize(fd, newSize)
	fs.metrics.RecordResize(time.Since(start), err)
	fs.logger.WithFd(fd).logOp("resize", err, "size", newSize)
	return translateError(err)
}

// LastError returns the public sentinel recorded by the most recent
// operation, or nil. It has no side effects.
func (fs *FS) LastError() error {
	return sentinel(fs.engine.LastError())
}

// Stats reports current resource usage.
func (fs *FS) Stats() Stats {
	return fs.engine.Stats()
}

// Close releases every file, block, and descriptor and resets the store to
// empty. The FS is reusable afterwards.
func (fs *FS) Close() error {
	fs.engine.Destroy()
	fs.logger.logOp("teardown", nil)
	return nil
}
