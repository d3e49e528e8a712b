// Package cursor persists per-transcript resume state in a sidecar file
// next to each transcript.
package cursor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Suffix is appended to a transcript path to name its sidecar cursor file.
const Suffix = ".offset"

// Cursor is the per-file resume state: how many raw lines are settled and
// how many journeys the file has produced so far. LineOffset only ever
// increases, and only up to the boundary of the last settled session.
type Cursor struct {
	LineOffset   int `json:"line_offset"`
	JourneyCount int `json:"journey_count"`
}

// Load reads the sidecar cursor for the given transcript file. A missing
// sidecar yields the zero cursor; an unreadable or corrupt one is an error
// so the caller can skip the file without losing its place.
func Load(transcriptPath string) (Cursor, error) {
	data, err := os.ReadFile(transcriptPath + Suffix)
	if err != nil {
		if os.IsNotExist(err) {
			return Cursor{}, nil
		}
		return Cursor{}, fmt.Errorf("read cursor: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("parse cursor: %w", err)
	}
	return c, nil
}

// Save writes the cursor atomically: marshal to a temp file in the same
// directory, then rename over the sidecar. A crash mid-write leaves the
// previous cursor intact.
func Save(transcriptPath string, c Cursor) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cursor: %w", err)
	}

	path := transcriptPath + Suffix
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cursor: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp cursor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cursor: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename cursor: %w", err)
	}
	return nil
}
