package cssevents

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped by .gitignore
}

// loadGitIgnore compiles <dir>/.gitignore.
// Gracefully degrades if the file doesn't exist.
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// ScanFiles finds all files under sourceDir matching includes. Matches are
// de-duplicated, directories are dropped and, when respectGitignore is
// set, files ignored by sourceDir's .gitignore are skipped.
func ScanFiles(sourceDir string, includes []string, respectGitignore bool) ([]string, ScanStats, error) {
	var stats ScanStats

	var gi *ignore.GitIgnore
	if respectGitignore {
		gi = loadGitIgnore(sourceDir)
	}

	var files []string
	seen := make(map[string]bool)
	for _, pattern := range includes {
		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(filepath.Join(sourceDir, pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if gi != nil {
				if rel, err := filepath.Rel(sourceDir, match); err == nil && gi.MatchesPath(rel) {
					stats.FilesSkipped++
					continue
				}
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}
