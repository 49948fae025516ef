package markdown

import (
	"os"
	"path/filepath"

	"github.com/lightfix/lightfix/internal/domain"
)

// Save writes rendered markdown to path, creating parent directories.
// A single blocking write; there is no partial-write recovery.
func Save(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &domain.WriteError{Path: path, Cause: err}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &domain.WriteError{Path: path, Cause: err}
	}
	return nil
}
