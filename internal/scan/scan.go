// Package scan enumerates logger files in a data directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Already drift-adjusted derivative files carry this marker in their
// name and must never be parsed as source data.
const defaultExcludeMarker = "driftadj"

// Scanner finds logger files by extension. Results are grouped per
// extension in the order the extensions are listed, so all .deg files
// come before all .lux files and so on.
type Scanner struct {
	extensions []string
	exclude    string
}

// NewScanner creates a scanner for the given extensions (e.g. ".deg").
// An empty exclude marker falls back to "driftadj".
func NewScanner(extensions []string, exclude string) *Scanner {
	if exclude == "" {
		exclude = defaultExcludeMarker
	}
	return &Scanner{extensions: extensions, exclude: exclude}
}

// Scan returns the logger files under dir, excluding any whose name
// contains the exclude marker. dir must be an existing directory.
func (s *Scanner) Scan(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", dir)
	}

	var files []string
	for _, ext := range s.extensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			// Only possible with a malformed pattern; extensions are
			// plain suffixes, but surface it rather than swallow.
			return nil, fmt.Errorf("globbing %s: %w", ext, err)
		}
		for _, m := range matches {
			if strings.Contains(filepath.Base(m), s.exclude) {
				continue
			}
			files = append(files, m)
		}
	}

	return files, nil
}
