package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"crowdfunding-etl/utils"
)

// FileScriptWriter writes generated SQL scripts into one directory.
type FileScriptWriter struct {
	dir    string
	logger *utils.Logger
}

// NewFileScriptWriter creates the script directory if needed.
func NewFileScriptWriter(dir string, logger *utils.Logger) (*FileScriptWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("script: create dir: %w", err)
	}
	return &FileScriptWriter{dir: dir, logger: logger}, nil
}

// WriteScript overwrites dir/name with text.
func (w *FileScriptWriter) WriteScript(name, text string) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("script: write %q: %w", path, err)
	}
	w.logger.Info("[sqlgen] Wrote %s", path)
	return path, nil
}
