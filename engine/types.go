package engine

const (
	// BlockSize is the fixed capacity of a single block in bytes.
	BlockSize = 512

	// MaxFileSize is the hard limit on the logical size of a single file.
	MaxFileSize = 100 * 1024 * 1024

	// initialTableCap is the descriptor table's first allocation.
	initialTableCap = 16

	// nilBlock marks the absence of a block index (empty chain, cursor on
	// an empty file, end of chain).
	nilBlock int32 = -1
)

// Accounting charges against the memory budget. The block charge is the
// dominant one; the rest exist so that file creation and descriptor-table
// growth have real failure paths.
const (
	blockCharge      = BlockSize
	fileCharge       = 128
	descriptorCharge = 64
	slotCharge       = 16
)

// OpenFlag controls Open behavior and the access mode of the resulting
// descriptor.
type OpenFlag uint32

const (
	// Create creates the file if it does not exist.
	Create OpenFlag = 1 << iota
	// ReadOnly restricts the descriptor to reads.
	ReadOnly
	// WriteOnly restricts the descriptor to writes.
	WriteOnly
	// ReadWrite allows both. This is the default when none of ReadOnly,
	// WriteOnly, ReadWrite is given.
	ReadWrite
)

const modeMask = ReadOnly | WriteOnly | ReadWrite

func (f OpenFlag) canRead() bool  { return f&(ReadOnly|ReadWrite) != 0 }
func (f OpenFlag) canWrite() bool { return f&(WriteOnly|ReadWrite) != 0 }

// file is a registry entry: a name, a logical size, and ownership of a
// block chain. refs counts open descriptors; registered tracks registry
// membership. A file is reachable while registered || refs > 0 and is
// destroyed the instant both become false.
type file struct {
	name       string
	size       int64
	head, tail int32
	refs       int
	registered bool
}

// descriptor is one open handle's cursor: the bound file, the block
// currently addressed, the intra-block position, and the absolute offset.
// The invariant pos == offset - sum(occupied of prior blocks) holds between
// operations; resize shrink repairs it for every descriptor it invalidates.
type descriptor struct {
	file   *file
	block  int32
	pos    int
	offset int64
	flags  OpenFlag
}

// Stats is a snapshot of engine resource usage.
type Stats struct {
	Files           int
	OpenDescriptors int
	BlocksInUse     int
	BytesReserved   int64
}

// DumpedFile is one registered file's full contents, as produced by Dump.
type DumpedFile struct {
	Name string
	Data []byte
}
