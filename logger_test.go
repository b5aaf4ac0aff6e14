package wgrender

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/wgrender/internal/gputest"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs did not return nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup did not return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLoggerPropagates(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dev, queue := gputest.Open(t)
	r, err := New(dev, queue)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.BeginFrame(image.Rect(0, 0, 10, 10)); err != nil {
		t.Fatal(err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatal(err)
	}
	r.Release()

	out := buf.String()
	for _, want := range []string{
		"wgrender: renderer created",
		"wgctx: context created",
		"stage: flushed",
		"wgrender: renderer released",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestWithLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	dev, queue := gputest.Open(t)
	r, err := New(dev, queue, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()
	if !strings.Contains(buf.String(), "renderer created") {
		t.Errorf("WithLogger logger unused: %q", buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			} else {
				_ = Logger()
			}
		}()
	}
	wg.Wait()
}

func TestReleaseDuringFrameWarns(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	dev, queue := gputest.Open(t)
	r, err := New(dev, queue)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.BeginFrame(image.Rect(0, 0, 10, 10)); err != nil {
		t.Fatal(err)
	}
	r.Release()

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "released during a frame") {
		t.Errorf("missing release warning:\n%s", out)
	}

	buf.Reset()
	r2, err := New(dev, queue)
	if err != nil {
		t.Fatal(err)
	}
	r2.Release()
	if strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("release outside a frame warned:\n%s", buf.String())
	}
}
