package wgrender

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// DefaultStageCapacity is the initial size in bytes of each stage region.
const DefaultStageCapacity = 64 << 10

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := wgrender.New(device, queue,
//	    wgrender.WithTargetFormat(gputypes.TextureFormatRGBA8Unorm),
//	    wgrender.WithFastBBox(true),
//	)
type Option func(*options)

type options struct {
	logger        *slog.Logger
	format        gputypes.TextureFormat
	fastBBox      bool
	stageCapacity int
}

func defaultOptions() options {
	return options{
		format:        gputypes.TextureFormatUndefined, // BGRA8, or the provider's surface format
		stageCapacity: DefaultStageCapacity,
	}
}

// WithLogger installs l as the package logger when the Renderer is created.
// It is equivalent to calling SetLogger(l) first.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTargetFormat sets the format of the render target. Without it New uses
// BGRA8Unorm and NewFromProvider the provider's surface format.
func WithTargetFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithFastBBox selects round-to-nearest device regions instead of regions
// that cover every partially touched pixel. Fast regions may clip
// antialiased edges by up to half a pixel.
func WithFastBBox(fast bool) Option {
	return func(o *options) {
		o.fastBBox = fast
	}
}

// WithInitialStageCapacity sets the initial byte capacity of the stage
// vertex and index regions. Non-positive values keep the default.
func WithInitialStageCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.stageCapacity = n
		}
	}
}
