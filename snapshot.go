package blockfs

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/blockfs/codec"
	"github.com/hupe1980/blockfs/resource"
)

var (
	snapshotMagic         = [4]byte{'B', 'F', 'S', '1'}
	snapshotFormatVersion = uint16(1)
)

// maxSnapshotPayload bounds the decoded payload length read from a
// header, so a corrupt length field cannot trigger a huge allocation.
const maxSnapshotPayload = 1 << 31

type snapshotFile struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

type snapshotTable struct {
	Files []snapshotFile `json:"files"`
}

// SaveToWriter serializes every registered file to w.
//
// Format:
//  1. fixed header (magic, version, compression scheme, codec name length)
//  2. codec name
//  3. payload length (8 bytes) and compressed codec-marshaled file table
//  4. CRC32 (IEEE) of the compressed payload
//
// Open descriptors and files deleted while open are runtime state and are
// not captured. The stream is self-describing: restore selects codec and
// compression from the header, not from options.
func (fs *FS) SaveToWriter(w io.Writer) error {
	if w == nil {
		return fmt.Errorf("snapshot: writer is nil")
	}
	c := fs.opts.codec
	if c == nil {
		c = codec.Default
	}
	codecName := c.Name()
	if len(codecName) > 0xFFFF {
		return fmt.Errorf("snapshot: codec name too long: %d", len(codecName))
	}
	if fs.opts.controller != nil {
		w = resource.NewRateLimitedWriter(context.Background(), w, fs.opts.controller)
	}

	table := snapshotTable{}
	for _, df := range fs.engine.Dump() {
		table.Files = append(table.Files, snapshotFile{Name: df.Name, Data: df.Data})
	}
	raw, err := c.Marshal(table)
	if err != nil {
		return fmt.Errorf("snapshot: encode file table: %w", err)
	}
	payload, err := compressPayload(raw, fs.opts.compression)
	if err != nil {
		return err
	}

	// Header (16 bytes + codec name)
	// [0:4]   magic
	// [4:6]   version
	// [6]     compression scheme
	// [7]     reserved
	// [8:10]  codec name len
	// [10:16] reserved
	var hdr [16]byte
	copy(hdr[0:4], snapshotMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], snapshotFormatVersion)
	hdr[6] = byte(fs.opts.compression)
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(len(codecName)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte(codecName)); err != nil {
		return err
	}

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}

	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], crc32.ChecksumIEEE(payload))
	if _, err := w.Write(crcBuf[:]); err != nil {
		return err
	}
	return nil
}

// NewFromReader builds a new FS from a snapshot stream produced by
// SaveToWriter. Options configure the new instance (budget, logging);
// codec and compression are taken from the stream's header.
func NewFromReader(r io.Reader, optFns ...Option) (*FS, error) {
	if r == nil {
		return nil, fmt.Errorf("snapshot: reader is nil")
	}
	fs := New(optFns...)
	if fs.opts.controller != nil {
		r = resource.NewRateLimitedReader(context.Background(), r, fs.opts.controller)
	}

	var hdr [16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if [4]byte(hdr[0:4]) != snapshotMagic {
		return nil, fmt.Errorf("snapshot: invalid header magic")
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != snapshotFormatVersion {
		return nil, fmt.Errorf("snapshot: unsupported format version: %d", v)
	}
	compression := Compression(hdr[6])
	nameLen := int(binary.LittleEndian.Uint16(hdr[8:10]))
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, fmt.Errorf("snapshot: read codec name: %w", err)
	}
	c, ok := codec.ByName(string(nameBuf))
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown codec %q", nameBuf)
	}

	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read payload length: %w", err)
	}
	payloadLen := binary.LittleEndian.Uint64(lenBuf[:])
	if payloadLen > maxSnapshotPayload {
		return nil, fmt.Errorf("snapshot: payload length %d exceeds limit", payloadLen)
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("snapshot: read payload: %w", err)
	}
	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read checksum: %w", err)
	}
	if want, got := binary.LittleEndian.Uint32(crcBuf[:]), crc32.ChecksumIEEE(payload); want != got {
		return nil, fmt.Errorf("snapshot: checksum mismatch: expected 0x%08x, got 0x%08x", want, got)
	}

	raw, err := decompressPayload(payload, compression)
	if err != nil {
		return nil, err
	}
	var table snapshotTable
	if err := c.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("snapshot: decode file table: %w", err)
	}
	// Load in reverse so the registry ends up in the dumped order (loads
	// insert at the head).
	for i := len(table.Files) - 1; i >= 0; i-- {
		sf := table.Files[i]
		if err := fs.engine.Load(sf.Name, sf.Data); err != nil {
			// Files restored before the failure would otherwise stay
			// charged against the controller with no handle to release
			// them through.
			fs.engine.Destroy()
			return nil, translateError(fmt.Errorf("snapshot: restore %q: %w", sf.Name, err))
		}
	}
	return fs, nil
}

func compressPayload(raw []byte, scheme Compression) ([]byte, error) {
	switch scheme {
	case CompressionNone:
		return raw, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: init zstd: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, fmt.Errorf("snapshot: lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("snapshot: lz4 flush: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("snapshot: unknown compression scheme %d", scheme)
	}
}

func decompressPayload(payload []byte, scheme Compression) ([]byte, error) {
	switch scheme {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: init zstd: %w", err)
		}
		defer dec.Close()
		raw, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd decompress: %w", err)
		}
		return raw, nil
	case CompressionLZ4:
		raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return nil, fmt.Errorf("snapshot: lz4 decompress: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("snapshot: unknown compression scheme %d", scheme)
	}
}
