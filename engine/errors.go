package engine

import "errors"

// Engine-layer sentinels. The blockfs package translates these into its
// public error contract.
var (
	// ErrNoSuchFile is returned for unknown file names and for invalid or
	// already-closed handles.
	ErrNoSuchFile = errors.New("no such file")

	// ErrOutOfMemory is returned when the configured memory budget cannot
	// cover an allocation (block, file, or descriptor-table growth).
	ErrOutOfMemory = errors.New("out of memory")

	// ErrPermissionDenied is returned when an operation is forbidden by the
	// descriptor's open mode.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSizeLimitExceeded is returned when a write or resize would push a
	// file past MaxFileSize.
	ErrSizeLimitExceeded = errors.New("size limit exceeded")
)
