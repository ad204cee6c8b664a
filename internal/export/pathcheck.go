package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anoonan/folio/internal/errors"
)

// ValidateOutputDir checks an export destination and returns its absolute path.
// It rejects:
// 1. Empty paths and ".." traversal
// 2. A destination that is itself a symlink
// 3. A destination that exists but is not a directory
// 4. A non-empty directory, unless force is set
func ValidateOutputDir(dir string, force bool) (string, error) {
	if dir == "" {
		return "", errors.NewInvalidRequest("output directory is required")
	}

	if containsTraversal(dir) {
		return "", errors.NewInvalidRequest("output directory must not contain directory traversal (..)")
	}

	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid output directory: %v", err))
	}

	info, err := os.Lstat(absDir)
	if os.IsNotExist(err) {
		return absDir, nil
	}
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to stat output directory: %w", err))
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return "", errors.NewInvalidRequest("output directory must not be a symlink")
	}
	if !info.IsDir() {
		return "", errors.NewInvalidRequest("output path exists and is not a directory")
	}

	if !force {
		entries, err := os.ReadDir(absDir)
		if err != nil {
			return "", errors.NewInternal(fmt.Errorf("failed to read output directory: %w", err))
		}
		if len(entries) > 0 {
			return "", errors.NewInvalidRequest("output directory is not empty (use force to overwrite)")
		}
	}

	return absDir, nil
}

// containsTraversal checks if path contains ".." directory traversal.
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	// Also check for forward slashes on all platforms (e.g., user input)
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}
