// Package store holds the task list and daily statistics, persisted as
// JSON files under the data directory. Files are rewritten in full on
// every mutation; saving is best-effort and the in-memory state stays
// authoritative for the rest of the process.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// readJSON loads path into v. A missing file returns os.ErrNotExist.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON rewrites path with v, creating the directory if needed.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
