package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncWriter guards a buffer against the spinner goroutine.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestSpinner_RendersAndClears(t *testing.T) {
	var w syncWriter
	stop := Start(&w, "thinking")

	time.Sleep(400 * time.Millisecond)
	stop()

	out := w.String()
	if !strings.Contains(out, "thinking") {
		t.Fatalf("expected at least one frame with the message, got %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("expected the line to be cleared, got %q", out)
	}
}

func TestSpinner_StopTwice(t *testing.T) {
	var w syncWriter
	stop := Start(&w, "thinking")
	stop()
	stop()
}
