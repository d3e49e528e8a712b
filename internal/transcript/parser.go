package transcript

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

var linePattern = regexp.MustCompile(`^\[(.*?)\]\s(.*?):\s(.*)$`)

// timestampLayouts are tried in order against the bracketed timestamp text.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
}

// ParseLine parses one transcript line of the form "[ts] sender: text".
// ok is false for blank or malformed lines, which callers drop without
// failing the file.
func ParseLine(line string, lineNo int) (Message, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Message{}, false
	}
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Message{}, false
	}
	return Message{
		Timestamp: parseTimestamp(strings.TrimSpace(m[1])),
		Sender:    strings.TrimSpace(m[2]),
		Text:      strings.TrimSpace(m[3]),
		Line:      lineNo,
	}, true
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// ReadFromOffset reads a transcript file starting at the given 0-based raw
// line offset. It returns the parsed messages, each carrying its absolute
// line index, plus the total raw line count of the file (blank and
// malformed lines included).
func ReadFromOffset(path string, offset int) ([]Message, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var msgs []Message
	lineNo := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if lineNo < offset {
			lineNo++
			continue
		}
		if msg, ok := ParseLine(scanner.Text(), lineNo); ok {
			msgs = append(msgs, msg)
		}
		lineNo++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan: %w", err)
	}

	return msgs, lineNo, nil
}
