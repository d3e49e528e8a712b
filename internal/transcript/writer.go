package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// lineTimeLayout is the timestamp format the writer emits; it is the first
// layout the parser tries.
const lineTimeLayout = "2006-01-02 15:04:05"

var newlineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Writer appends chat messages to per-conversation transcript files, one
// formatted line per message. It is the producing half of the contract the
// pipeline's parser consumes.
type Writer struct {
	dir string
	mu  sync.Mutex
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Append writes one "[ts] sender: text" line to <dir>/<conversationID>.txt.
// Newlines inside text are flattened to spaces so the one-message-per-line
// file invariant holds.
func (w *Writer) Append(conversationID, sender, text string, ts time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	text = strings.TrimSpace(newlineFlattener.Replace(text))
	line := fmt.Sprintf("[%s] %s: %s\n", ts.Format(lineTimeLayout), sender, text)

	path := filepath.Join(w.dir, conversationID+".txt")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	return nil
}
