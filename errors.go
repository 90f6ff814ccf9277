package blockfs

import (
	"errors"
	"fmt"

	"github.com/hupe1980/blockfs/engine"
)

// Public error contract. Engine-layer errors are translated into these
// sentinels; match with errors.Is.
var (
	// ErrNoSuchFile is returned for unknown names and for invalid or
	// already-closed handles.
	ErrNoSuchFile = errors.New("no such file")

	// ErrOutOfMemory is returned when the configured memory budget cannot
	// cover an allocation.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrPermissionDenied is returned when the descriptor's open mode
	// forbids the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSizeLimitExceeded is returned when a write or resize would push a
	// file past MaxFileSize.
	ErrSizeLimitExceeded = errors.New("size limit exceeded")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, engine.ErrNoSuchFile):
		return fmt.Errorf("%w: %w", ErrNoSuchFile, err)
	case errors.Is(err, engine.ErrOutOfMemory):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	case errors.Is(err, engine.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case errors.Is(err, engine.ErrSizeLimitExceeded):
		return fmt.Errorf("%w: %w", ErrSizeLimitExceeded, err)
	}
	return err
}

// sentinel maps an engine error to its bare public sentinel, for the
// LastError accessor.
func sentinel(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, engine.ErrNoSuchFile):
		return ErrNoSuchFile
	case errors.Is(err, engine.ErrOutOfMemory):
		return ErrOutOfMemory
	case errors.Is(err, engine.ErrPermissionDenied):
		return ErrPermissionDenied
	case errors.Is(err, engine.ErrSizeLimitExceeded):
		return ErrSizeLimitExceeded
	}
	return err
}
