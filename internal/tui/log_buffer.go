package tui

import (
	"bytes"
	"strings"
	"sync"
)

// DefaultLogLines is how many log lines the dev screen keeps.
const DefaultLogLines = 200

// LogBuffer is an io.Writer keeping the last lines written to it. The dev
// logger writes into it while the terminal UI owns the screen.
type LogBuffer struct {
	mu      sync.Mutex
	lines   []string
	max     int
	partial []byte
}

// NewLogBuffer returns a buffer of at most max lines.
func NewLogBuffer(max int) *LogBuffer {
	if max <= 0 {
		max = DefaultLogLines
	}
	return &LogBuffer{max: max}
}

// Write implements io.Writer. An unterminated last line is held back until
// its newline arrives.
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data := append(b.partial, p...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		b.lines = append(b.lines, strings.TrimRight(string(data[:i]), "\r"))
		data = data[i+1:]
	}
	b.partial = append([]byte(nil), data...)

	if over := len(b.lines) - b.max; over > 0 {
		b.lines = append([]string(nil), b.lines[over:]...)
	}
	return len(p), nil
}

// Last returns up to n most recent lines, oldest first.
func (b *LogBuffer) Last(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > len(b.lines) {
		n = len(b.lines)
	}
	out := make([]string, n)
	copy(out, b.lines[len(b.lines)-n:])
	return out
}

// Len returns the number of complete lines held.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}
