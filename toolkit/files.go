package toolkit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailored-agentic-units/goagent/core/protocol"
	"github.com/tailored-agentic-units/goagent/tools"
)

// ReadFile returns a tool that reads a text file.
func ReadFile(cfg FilesConfig) tools.Tool {
	def := protocol.Tool{
		Name:        NameReadFile,
		Description: "读取指定路径的文件内容。参数为文件路径。",
	}
	return tools.New(def, func(_ context.Context, input string) (string, error) {
		if strings.TrimSpace(input) == "" {
			return "", ErrEmptyInput
		}
		path, err := resolvePath(cfg.Root, input)
		if err != nil {
			return "", err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return truncate(string(data), cfg.MaxChars), nil
	})
}

// ListDirectory returns a tool that lists a directory, one entry per line,
// with a trailing slash on subdirectories. An empty input lists the root.
func ListDirectory(cfg FilesConfig) tools.Tool {
	def := protocol.Tool{
		Name:        NameListDirectory,
		Description: "列出指定目录下的文件和子目录。参数为目录路径，留空表示当前目录。",
	}
	return tools.New(def, func(_ context.Context, input string) (string, error) {
		path, err := resolvePath(cfg.Root, input)
		if err != nil {
			return "", err
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return "", err
		}

		var b strings.Builder
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() {
				name += "/"
			}
			b.WriteString(name)
			b.WriteByte('\n')
		}
		return b.String(), nil
	})
}

// resolvePath maps input onto the filesystem. With a root, relative paths
// are joined to it and the result must not leave it, either lexically or
// after symlinks are followed.
func resolvePath(root, input string) (string, error) {
	p := strings.TrimSpace(input)
	if p == "" {
		p = "."
	}
	if root == "" {
		return filepath.Clean(p), nil
	}

	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	p = filepath.Clean(p)

	if !within(filepath.Clean(root), p) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, input)
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return p, nil
	}
	if resolved, ok := evalExisting(p); ok && !within(realRoot, resolved) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, input)
	}
	return p, nil
}

// evalExisting resolves symlinks in p, or in its parent when p itself does
// not exist yet.
func evalExisting(p string) (string, bool) {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved, true
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(p))
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, filepath.Base(p)), true
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
