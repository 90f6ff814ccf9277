// Package engine implements the block-chained storage core of blockfs.
//
// An Engine owns three cooperating structures:
//
//   - a block arena: fixed-capacity 512-byte blocks addressed by stable
//     indices, linked into an ordered chain per file;
//   - a file registry: a linear-scan list of named files, each owning a
//     chain and an open-reference count;
//   - a descriptor table: a growable slot array mapping small integer
//     handles to cursors into a file's chain.
//
// Files are destroyed exactly when they are both unregistered (deleted)
// and unreferenced (no open descriptors). Deleting a file that still has
// open descriptors orphans it; the storage survives until the last close.
//
// The engine is single-threaded by contract: the caller serializes all
// access to a given Engine. Multiple descriptors on the same file share
// its blocks without isolation; overlapping writes through two descriptors
// are last-write-wins.
package engine
