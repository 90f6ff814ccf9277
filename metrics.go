package blockfs

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement it to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordOpen is called after each open. err is nil on success.
	RecordOpen(duration time.Duration, err error)

	// RecordRead is called after each read with the byte count returned.
	RecordRead(n int, duration time.Duration, err error)

	// RecordWrite is called after each write with the byte count written.
	RecordWrite(n int, duration time.Duration, err error)

	// RecordClose is called after each handle close.
	RecordClose(duration time.Duration, err error)

	// RecordDelete is called after each delete.
	RecordDelete(duration time.Duration, err error)

	// RecordResize is called after each resize.
	RecordResize(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(time.Duration, error)       {}
func (NoopMetricsCollector) RecordRead(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordWrite(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordClose(time.Duration, error)      {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)     {}
func (NoopMetricsCollector) RecordResize(time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	OpenCount    atomic.Int64
	OpenErrors   atomic.Int64
	ReadCount    atomic.Int64
	ReadBytes    atomic.Int64
	ReadErrors   atomic.Int64
	WriteCount   atomic.Int64
	WriteBytes   atomic.Int64
	WriteErrors  atomic.Int64
	CloseCount   atomic.Int64
	CloseErrors  atomic.Int64
	DeleteCount  atomic.Int64
	DeleteErrors atomic.Int64
	ResizeCount  atomic.Int64
	ResizeErrors atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(_ time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(n int, _ time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadBytes.Add(int64(n))
	if err != nil {
		b.ReadErrors.Add(1)
	}
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(n int, _ time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteBytes.Add(int64(n))
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// RecordClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClose(_ time.Duration, err error) {
	b.CloseCount.Add(1)
	if err != nil {
		b.CloseErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(_ time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordResize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResize(_ time.Duration, err error) {
	b.ResizeCount.Add(1)
	if err != nil {
		b.ResizeErrors.Add(1)
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount   int64
	OpenErrors  int64
	ReadCount   int64
	ReadBytes   int64
	WriteCount  int64
	WriteBytes  int64
	CloseCount  int64
	DeleteCount int64
	ResizeCount int64
	TotalErrors int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:   b.OpenCount.Load(),
		OpenErrors:  b.OpenErrors.Load(),
		ReadCount:   b.ReadCount.Load(),
		ReadBytes:   b.ReadBytes.Load(),
		WriteCount:  b.WriteCount.Load(),
		WriteBytes:  b.WriteBytes.Load(),
		CloseCount:  b.CloseCount.Load(),
		DeleteCount: b.DeleteCount.Load(),
		ResizeCount: b.ResizeCount.Load(),
		TotalErrors: b.OpenErrors.Load() + b.ReadErrors.Load() + b.WriteErrors.Load() +
			b.CloseErrors.Load() + b.DeleteErrors.Load() + b.ResizeErrors.Load(),
	}
}
