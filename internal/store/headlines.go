// Package store persists the headline log and the qualified-records table
// as flat files.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// HeadlineLog is the ordered list of titles already judged unique and
// forwarded downstream. The qualification pipeline is its only writer.
type HeadlineLog struct {
	path      string
	headlines []string
}

// LoadHeadlineLog reads the log from path. An absent file yields an empty
// log; a corrupt file yields an empty log with a warning, never an error.
func LoadHeadlineLog(path string) *HeadlineLog {
	log := &HeadlineLog{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: cannot read headline log %s: %v, starting empty\n", path, err)
		}
		return log
	}

	if err := json.Unmarshal(data, &log.headlines); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: corrupt headline log %s: %v, starting empty\n", path, err)
		log.headlines = nil
	}

	return log
}

// Snapshot returns a copy of the current headlines. Duplicate checks inside
// a batch all run against the snapshot taken before the batch started.
func (l *HeadlineLog) Snapshot() []string {
	out := make([]string, len(l.headlines))
	copy(out, l.headlines)
	return out
}

// Len returns the number of logged headlines.
func (l *HeadlineLog) Len() int {
	return len(l.headlines)
}

// Append adds newly sent titles to the log in order.
func (l *HeadlineLog) Append(titles ...string) {
	l.headlines = append(l.headlines, titles...)
}

// Save writes the log atomically: temp file in the same directory, then
// rename over the target.
func (l *HeadlineLog) Save() error {
	data, err := json.MarshalIndent(l.headlines, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal headlines: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".headlines-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace headline log: %w", err)
	}

	return nil
}
