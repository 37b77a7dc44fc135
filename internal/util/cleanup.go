package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CleanupUnfinishedTempFiles removes pending files a killed run left next to
// each target. Pending files are named "." + base name + random digits.
func CleanupUnfinishedTempFiles(w io.Writer, targets ...string) {
	byDir := map[string][]string{}
	for _, t := range targets {
		dir := filepath.Dir(t)
		byDir[dir] = append(byDir[dir], "."+filepath.Base(t))
	}

	for dir, prefixes := range byDir {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if e.IsDir() || !isPendingName(e.Name(), prefixes) {
				continue
			}

			full := filepath.Join(dir, e.Name())
			if err := os.Remove(full); err != nil {
				_, _ = fmt.Fprintf(w, "Error cleaning up %s: %v\n", full, err)
			} else {
				_, _ = fmt.Fprintf(w, "Removed %s\n", full)
			}
		}
	}
}

func isPendingName(name string, prefixes []string) bool {
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(name, p)
		if !ok || rest == "" {
			continue
		}
		if strings.Trim(rest, "0123456789") == "" {
			return true
		}
	}

	return false
}
