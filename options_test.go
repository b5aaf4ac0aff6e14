package wgrender

import (
	"log/slog"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestOptions(t *testing.T) {
	l := slog.New(nopHandler{})
	tests := []struct {
		name string
		opts []Option
		want options
	}{
		{
			name: "defaults",
			want: options{stageCapacity: DefaultStageCapacity},
		},
		{
			name: "all set",
			opts: []Option{
				WithLogger(l),
				WithTargetFormat(gputypes.TextureFormatRGBA8Unorm),
				WithFastBBox(true),
				WithInitialStageCapacity(128),
			},
			want: options{logger: l, format: gputypes.TextureFormatRGBA8Unorm, fastBBox: true, stageCapacity: 128},
		},
		{
			name: "non-positive capacity ignored",
			opts: []Option{WithInitialStageCapacity(0), WithInitialStageCapacity(-5)},
			want: options{stageCapacity: DefaultStageCapacity},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			if o != tt.want {
				t.Errorf("options = %+v, want %+v", o, tt.want)
			}
		})
	}
}
