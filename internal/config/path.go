package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ and $VAR references, e.g.
// "~/statements/$USER" becomes "/home/alice/statements/alice".
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}
	return os.ExpandEnv(path)
}

// EnsureDir creates dir (and parents) if it does not exist yet.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", dir)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(filepath.Clean(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
