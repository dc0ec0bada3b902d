package logger

import (
	"strings"
	"sync"
)

// RingBuffer is a fixed-capacity buffer of log lines. When full, the oldest
// line is dropped. It implements io.Writer so it can back a zapcore sink.
type RingBuffer struct {
	mu    sync.Mutex
	lines []string
	cap   int
}

// NewRingBuffer creates a ring buffer holding at most capacity lines.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		lines: make([]string, 0, capacity),
		cap:   capacity,
	}
}

// Write stores one log line. zap hands the encoder output over as a single
// newline-terminated entry per call.
func (b *RingBuffer) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")

	b.mu.Lock()
	if len(b.lines) >= b.cap {
		copy(b.lines, b.lines[1:])
		b.lines = b.lines[:len(b.lines)-1]
	}
	b.lines = append(b.lines, line)
	b.mu.Unlock()

	return len(p), nil
}

// Recent returns buffered lines, oldest first. With a non-empty filter it
// returns every line containing the substring (case-insensitive); otherwise
// it returns at most limit of the newest lines.
func (b *RingBuffer) Recent(filter string, limit int) []string {
	b.mu.Lock()
	snapshot := make([]string, len(b.lines))
	copy(snapshot, b.lines)
	b.mu.Unlock()

	if filter != "" {
		needle := strings.ToLower(filter)
		matched := make([]string, 0, len(snapshot))
		for _, line := range snapshot {
			if strings.Contains(strings.ToLower(line), needle) {
				matched = append(matched, line)
			}
		}
		return matched
	}

	if limit > 0 && len(snapshot) > limit {
		snapshot = snapshot[len(snapshot)-limit:]
	}
	return snapshot
}
