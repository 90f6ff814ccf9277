package blockfs

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/blockfs/resource"
	"github.com/hupe1980/blockfs/testutil"
)

func populate(t *testing.T, fs *FS, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		fd, err := fs.Open(name, Create)
		require.NoError(t, err)
		if len(data) > 0 {
			n, err := fs.Write(fd, data)
			require.NoError(t, err)
			require.Equal(t, len(data), n)
		}
		require.NoError(t, fs.CloseFd(fd))
	}
}

func readAll(t *testing.T, fs *FS, name string) []byte {
	t.Helper()
	f, err := fs.OpenFile(name, 0)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func TestSnapshotRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)
	files := map[string][]byte{
		"empty":      nil,
		"small":      []byte("hello snapshot"),
		"multiblock": rng.Bytes(3*BlockSize + 99),
	}

	for _, tc := range []struct {
		name        string
		compression Compression
	}{
		{"None", CompressionNone},
		{"Zstd", CompressionZstd},
		{"LZ4", CompressionLZ4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fs := New(WithCompression(tc.compression))
			defer fs.Close()
			populate(t, fs, files)

			var buf bytes.Buffer
			require.NoError(t, fs.SaveToWriter(&buf))

			loaded, err := NewFromReader(&buf)
			require.NoError(t, err)
			defer loaded.Close()

			for name, data := range files {
				got := readAll(t, loaded, name)
				assert.True(t, bytes.Equal(data, got), "file %q", name)
			}
			assert.Equal(t, len(files), loaded.Stats().Files)
		})
	}
}

func TestSnapshotExcludesOrphans(t *testing.T) {
	fs := New()
	defer fs.Close()

	fd, err := fs.Open("doomed", Create)
	require.NoError(t, err)
	_, err = fs.Write(fd, []byte("still readable via fd"))
	require.NoError(t, err)
	require.NoError(t, fs.Delete("doomed"))

	populate(t, fs, map[string][]byte{"kept": []byte("kept")})

	var buf bytes.Buffer
	require.NoError(t, fs.SaveToWriter(&buf))
	require.NoError(t, fs.CloseFd(fd))

	loaded, err := NewFromReader(&buf)
	require.NoError(t, err)
	defer loaded.Close()

	assert.Equal(t, 1, loaded.Stats().Files)
	_, err = loaded.Open("doomed", 0)
	require.ErrorIs(t, err, ErrNoSuchFile)
}

func TestSnapshotCorruption(t *testing.T) {
	fs := New(WithCompression(CompressionNone))
	defer fs.Close()
	populate(t, fs, map[string][]byte{"f": []byte("payload bytes")})

	var buf bytes.Buffer
	require.NoError(t, fs.SaveToWriter(&buf))
	snap := buf.Bytes()

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte{}, snap...)
		bad[0] = 'X'
		_, err := NewFromReader(bytes.NewReader(bad))
		require.ErrorContains(t, err, "invalid header magic")
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := NewFromReader(bytes.NewReader(snap[:len(snap)/2]))
		require.Error(t, err)
	})

	t.Run("FlippedPayloadByte", func(t *testing.T) {
		bad := append([]byte{}, snap...)
		bad[len(bad)-10] ^= 0xFF
		_, err := NewFromReader(bytes.NewReader(bad))
		require.ErrorContains(t, err, "checksum mismatch")
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewFromReader(bytes.NewReader(nil))
		require.Error(t, err)
	})
}

func TestSnapshotRateLimited(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	fs := New(WithResourceController(rc))
	defer fs.Close()
	populate(t, fs, map[string][]byte{"f": testutil.NewRNG(7).Bytes(2 * BlockSize)})

	var buf bytes.Buffer
	require.NoError(t, fs.SaveToWriter(&buf))

	loaded, err := NewFromReader(&buf, WithResourceController(rc))
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, readAll(t, fs, "f"), readAll(t, loaded, "f"))
}

func TestSnapshotRestoreBudget(t *testing.T) {
	fs := New()
	defer fs.Close()
	// "small" restores first and fits the budget; "big" then blows it.
	populate(t, fs, map[string][]byte{"small": []byte("fits")})
	populate(t, fs, map[string][]byte{"big": testutil.NewRNG(9).Bytes(8 * BlockSize)})

	var buf bytes.Buffer
	require.NoError(t, fs.SaveToWriter(&buf))

	// The restored engine charges the target's budget, not the source's.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 2 * BlockSize})
	_, err := NewFromReader(&buf, WithResourceController(rc))
	require.ErrorIs(t, err, ErrOutOfMemory)

	// Files restored before the failure must not stay charged: the caller
	// gets no FS back to release them through.
	assert.Equal(t, int64(0), rc.MemoryUsage())
}
