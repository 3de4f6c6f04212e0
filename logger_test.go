package iconbadge

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is a bytes.Buffer safe for the concurrent writes of the batch workers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLogger_DefaultSilent(t *testing.T) {
	l := Logger()
	assert.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, l.Enabled(context.Background(), level))
	}
}

func TestLogger_RenderDiagnostics(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf syncBuffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	p := newTestProcessor()
	_, err := p.Render(context.Background(), RenderRequest{Name: "square", Size: 32})
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "outline cache hit")
	assert.Contains(t, out, "path flattened")
	assert.Contains(t, out, "badge drawn")

	jobs := []Job{{Node: "broken", Icon: "arc", Color: "red"}}
	_, err = p.Execute(context.Background(), jobs, &Ops{Dst: t.TempDir(), Size: 32})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "icon failed")
}

func TestLogger_SetNilRestoresSilence(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.New(slog.NewTextHandler(&syncBuffer{}, nil)))
	assert.True(t, Logger().Enabled(context.Background(), slog.LevelInfo))

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
