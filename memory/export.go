package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Exporter writes a finished run's trajectory somewhere a person can read it.
// Exports are diagnostic output only; nothing reads them back.
type Exporter interface {
	Export(name string, content string) (string, error)
}

type fileExporter struct {
	root string
}

// NewFileExporter creates an Exporter that writes one file per export under
// root. Names are /-separated relative paths; ".." segments are rejected.
func NewFileExporter(root string) Exporter {
	return &fileExporter{root: root}
}

// Export atomically writes content to root/name and returns the final path.
func (e *fileExporter) Export(name, content string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: invalid name %q", ErrExportFailed, name)
	}
	path := filepath.Join(e.root, clean)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExportFailed, name, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExportFailed, name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %s: %v", ErrExportFailed, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %s: %v", ErrExportFailed, name, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %s: %v", ErrExportFailed, name, err)
	}

	return path, nil
}
