// Package blockfs provides an embedded, purely in-memory file store for Go.
//
// Blockfs emulates a flat open/read/write/close/delete/resize file API on
// top of chains of fixed 512-byte blocks, with no persistent media, no
// directories, and no metadata beyond name and size. It is a drop-in
// substitute for real file IO in tests and sandboxed environments:
//
//   - Handle-based API mirroring classic file descriptors, plus an
//     io.Reader/io.Writer File adapter
//   - Multiple independent FS instances; no global state
//   - Multiple descriptors per file with shared, immediately visible
//     mutations
//   - Delete-while-open semantics: storage survives, tethered to the
//     remaining descriptors, until the last close
//   - Configurable memory budget with exact rollback on exhaustion
//   - Snapshot/restore of the whole store to any io.Writer/io.Reader,
//     with optional zstd or lz4 compression
//   - Structured logging (slog) and pluggable metrics
//
// # Quick start
//
//	fs := blockfs.New()
//	defer fs.Close()
//
//	fd, err := fs.Open("a", blockfs.Create)
//	if err != nil {
//	    panic(err)
//	}
//	n, _ := fs.Write(fd, []byte("hello"))
//	_, _ = fs.Seek(fd, 0)
//	buf := make([]byte, n)
//	n, _ = fs.Read(fd, buf)
//	_ = fs.CloseFd(fd)
//
// Or through the adapter:
//
//	f, err := fs.OpenFile("a", blockfs.Create)
//	if err != nil {
//	    panic(err)
//	}
//	defer f.Close()
//	io.Copy(f, strings.NewReader("hello"))
//
// # Concurrency
//
// An FS is single-threaded by contract: every operation runs to completion
// before returning and the store takes no locks of its own. Callers that
// share an FS across goroutines must serialize access.
package blockfs
