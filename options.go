package blockfs

import (
	"github.com/hupe1980/blockfs/codec"
	"github.com/hupe1980/blockfs/resource"
)

// Compression selects the snapshot payload compression scheme.
type Compression uint8

const (
	// CompressionNone stores the payload raw.
	CompressionNone Compression = iota
	// CompressionZstd compresses with zstd (klauspost/compress).
	CompressionZstd
	// CompressionLZ4 compresses with lz4 frame format (pierrec/lz4).
	CompressionLZ4
)

type options struct {
	controller  *resource.Controller
	codec       codec.Codec
	compression Compression
	metrics     MetricsCollector
	logger      *Logger
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		compression: CompressionZstd,
		metrics:     NoopMetricsCollector{},
		logger:      NoopLogger(),
	}
}

// Option configures FS construction and snapshot restore behavior.
type Option func(*options)

// WithResourceController attaches a resource controller enforcing a
// memory budget on the store and a throughput limit on snapshot streams.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithMemoryLimit is shorthand for a controller enforcing only a memory
// budget of limit bytes.
func WithMemoryLimit(limit int64) Option {
	return func(o *options) {
		o.controller = resource.NewController(resource.Config{MemoryLimitBytes: limit})
	}
}

// WithCodec configures the codec used for the snapshot file table.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the snapshot payload compression scheme.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector attaches a metrics collector invoked after every
// operation.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger attaches a structured logger. By default logging is off.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
