package emitter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasmodels/internal/fileutil"
)

// WriteFiles writes files into outputDir, creating it when missing.
// File names must not contain path separators.
func WriteFiles(outputDir string, files ...*GeneratedFile) error {
	if err := os.MkdirAll(outputDir, fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, file := range files {
		if file == nil {
			continue
		}
		safeName := filepath.Base(file.Name)
		if safeName != file.Name || safeName == "." || safeName == ".." {
			return fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		if err := os.WriteFile(filepath.Join(outputDir, safeName), file.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}

// WriteFile writes f to path, creating parent directories.
func (f *GeneratedFile) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
