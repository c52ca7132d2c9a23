package internal

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const IgnoreFilename = ".gsignore"

// IgnoreMatcher excludes image files from pair discovery using gitignore
// syntax. Patterns match paths relative to the image directory.
type IgnoreMatcher struct {
	patterns []gitignore.Pattern
}

// NewIgnoreMatcher reads the patterns in path. A missing file yields a
// matcher that matches nothing.
func NewIgnoreMatcher(path string) (*IgnoreMatcher, error) {
	patterns, err := parseIgnoreFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return &IgnoreMatcher{patterns: patterns}, nil
}

func NewIgnoreMatcherFromPatterns(lines ...string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, line := range lines {
		if p, ok := parsePattern(line); ok {
			m.patterns = append(m.patterns, p)
		}
	}
	return m
}

// Match reports whether the relative image path is excluded. Later patterns
// override earlier ones, so negations work as in .gitignore.
func (m *IgnoreMatcher) Match(relPath string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	parts := strings.Split(filepath.ToSlash(relPath), "/")

	excluded := false
	for _, p := range m.patterns {
		switch p.Match(parts, false) {
		case gitignore.Exclude:
			excluded = true
		case gitignore.Include:
			excluded = false
		}
	}
	return excluded
}

func parsePattern(line string) (gitignore.Pattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}
	return gitignore.ParsePattern(line, nil), true
}

func parseIgnoreFile(path string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		if p, ok := parsePattern(scanner.Text()); ok {
			patterns = append(patterns, p)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}
