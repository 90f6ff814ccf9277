package blockfs

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		fs := New()
		defer fs.Close()

		fd0, err := fs.Open("a", Create)
		require.NoError(t, err)
		n, err := fs.Write(fd0, []byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.NoError(t, fs.CloseFd(fd0))

		fd1, err := fs.Open("a", 0)
		require.NoError(t, err)
		buf := make([]byte, 10)
		n, err = fs.Read(fd1, buf)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(buf[:n]))
		require.NoError(t, fs.CloseFd(fd1))
	})

	t.Run("LastError", func(t *testing.T) {
		fs := New()
		defer fs.Close()

		_, err := fs.Open("ghost", 0)
		require.ErrorIs(t, err, ErrNoSuchFile)
		assert.Equal(t, ErrNoSuchFile, fs.LastError())

		fd, err := fs.Open("a", Create)
		require.NoError(t, err)
		assert.Nil(t, fs.LastError(), "last error resets on the next operation")
		require.NoError(t, fs.CloseFd(fd))
	})

	t.Run("IndependentInstances", func(t *testing.T) {
		fs1 := New()
		defer fs1.Close()
		fs2 := New()
		defer fs2.Close()

		fd, err := fs1.Open("only-here", Create)
		require.NoError(t, err)
		require.NoError(t, fs1.CloseFd(fd))

		_, err = fs2.Open("only-here", 0)
		require.ErrorIs(t, err, ErrNoSuchFile)
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		fs := New(WithMemoryLimit(64))
		defer fs.Close()

		_, err := fs.Open("a", Create)
		require.ErrorIs(t, err, ErrOutOfMemory)
		assert.Equal(t, ErrOutOfMemory, fs.LastError())
	})

	t.Run("Logging", func(t *testing.T) {
		var out bytes.Buffer
		fs := New(WithLogger(NewLogger(slog.NewJSONHandler(&out, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
		defer fs.Close()

		fd, err := fs.Open("a", Create)
		require.NoError(t, err)
		require.NoError(t, fs.CloseFd(fd))
		require.NoError(t, fs.Delete("a"))

		logs := out.String()
		assert.Contains(t, logs, `"name":"a"`, "name-based ops carry a name field")
		assert.Contains(t, logs, `"fd":0`, "handle-based ops carry an fd field")
		assert.Contains(t, logs, "delete completed")
	})

	t.Run("Metrics", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		fs := New(WithMetricsCollector(mc))
		defer fs.Close()

		fd, err := fs.Open("a", Create)
		require.NoError(t, err)
		_, err = fs.Write(fd, []byte("12345678"))
		require.NoError(t, err)
		_, err = fs.Seek(fd, 0)
		require.NoError(t, err)
		_, err = fs.Read(fd, make([]byte, 8))
		require.NoError(t, err)
		require.NoError(t, fs.CloseFd(fd))
		_, err = fs.Open("ghost", 0)
		require.Error(t, err)

		stats := mc.GetStats()
		assert.Equal(t, int64(2), stats.OpenCount)
		assert.Equal(t, int64(1), stats.OpenErrors)
		assert.Equal(t, int64(1), stats.WriteCount)
		assert.Equal(t, int64(8), stats.WriteBytes)
		assert.Equal(t, int64(1), stats.ReadCount)
		assert.Equal(t, int64(8), stats.ReadBytes)
		assert.Equal(t, int64(1), stats.CloseCount)
		assert.Equal(t, int64(1), stats.TotalErrors)
	})
}

func TestFile(t *testing.T) {
	t.Run("ReaderWriterSeeker", func(t *testing.T) {
		fs := New()
		defer fs.Close()

		f, err := fs.OpenFile("notes.txt", Create)
		require.NoError(t, err)
		defer f.Close()

		_, err = io.Copy(f, strings.NewReader("the quick brown fox"))
		require.NoError(t, err)

		size, err := f.Size()
		require.NoError(t, err)
		assert.Equal(t, int64(19), size)

		_, err = f.Seek(0, io.SeekStart)
		require.NoError(t, err)
		got, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "the quick brown fox", string(got))

		off, err := f.Seek(-3, io.SeekEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(16), off)
		got, err = io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "fox", string(got))
	})

	t.Run("SeekCurrent", func(t *testing.T) {
		fs := New()
		defer fs.Close()

		f, err := fs.OpenFile("f", Create)
		require.NoError(t, err)
		defer f.Close()
		_, err = f.Write([]byte("0123456789"))
		require.NoError(t, err)

		_, err = f.Seek(0, io.SeekStart)
		require.NoError(t, err)
		buf := make([]byte, 2)
		_, err = io.ReadFull(f, buf)
		require.NoError(t, err)

		off, err := f.Seek(3, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, int64(5), off)
		_, err = io.ReadFull(f, buf)
		require.NoError(t, err)
		assert.Equal(t, "56", string(buf))
	})

	t.Run("EOF", func(t *testing.T) {
		fs := New()
		defer fs.Close()

		f, err := fs.OpenFile("empty", Create)
		require.NoError(t, err)
		defer f.Close()

		n, err := f.Read(make([]byte, 4))
		assert.Equal(t, 0, n)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("DoubleClose", func(t *testing.T) {
		fs := New()
		defer fs.Close()

		f, err := fs.OpenFile("f", Create)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		require.ErrorIs(t, f.Close(), ErrNoSuchFile)
	})

	t.Run("MixedWithHandleAPI", func(t *testing.T) {
		fs := New()
		defer fs.Close()

		f, err := fs.OpenFile("f", Create)
		require.NoError(t, err)
		defer f.Close()

		// The adapter and the raw handle share one cursor.
		n, err := fs.Write(f.Fd(), []byte("abc"))
		require.NoError(t, err)
		require.Equal(t, 3, n)
		_, err = f.Seek(0, io.SeekStart)
		require.NoError(t, err)
		got, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.True(t, bytes.Equal([]byte("abc"), got))
	})
}

func TestErrorTranslation(t *testing.T) {
	fs := New()
	defer fs.Close()

	fd, err := fs.Open("a", Create|ReadOnly)
	require.NoError(t, err)
	_, err = fs.Write(fd, []byte("x"))
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.ErrorIs(t, fs.Resize(99, 10), ErrNoSuchFile)

	_, err = fs.Write(fd, nil)
	// Still a mode violation; the empty payload does not short-circuit it.
	require.True(t, errors.Is(err, ErrPermissionDenied))
}
