package downloader

import (
	"os"
	"path/filepath"
	"strings"

	"melodygram/internal/errs"
)

// probeExts is the ordered list of container extensions the extraction tool
// is known to negotiate.
var probeExts = []string{".mp3", ".m4a", ".webm", ".ogg"}

// ResolveOutput locates the file a job actually produced. The tool may have
// chosen a different container than templated, so the declared path is not
// trusted. Resolution order, first match wins:
//
//  1. the declared path itself, when given and present;
//  2. the base path (declared or template, extension stripped) with each
//     known audio extension;
//  3. any directory entry whose name is prefixed by the expected base name.
//
// When nothing matches, ErrFileNotFound is returned.
func ResolveOutput(outputBase, declared string) (string, error) {
	base := outputBase

	if declared != "" {
		if _, err := os.Stat(declared); err == nil {
			return declared, nil
		}

		base = strings.TrimSuffix(declared, filepath.Ext(declared))
	}

	for _, ext := range probeExts {
		path := base + ext
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	dir := filepath.Dir(base)
	prefix := filepath.Base(base)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errs.ErrFileNotFound
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", errs.ErrFileNotFound
}
