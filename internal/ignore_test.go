package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatcherMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	m, err := NewIgnoreMatcher(filepath.Join(tmpDir, IgnoreFilename))
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}

	if m.Match("bsp1_0.png") {
		t.Error("empty ignore should not match anything")
	}
}

func TestIgnoreMatcherExactPattern(t *testing.T) {
	tmpDir := t.TempDir()
	ignoreFile := filepath.Join(tmpDir, IgnoreFilename)
	if err := os.WriteFile(ignoreFile, []byte("bsp7_0.png\n"), 0644); err != nil {
		t.Fatalf("write ignore file: %v", err)
	}

	m, err := NewIgnoreMatcher(ignoreFile)
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}

	if !m.Match("bsp7_0.png") {
		t.Error("expected 'bsp7_0.png' to be ignored")
	}
	if m.Match("bsp8_0.png") {
		t.Error("expected 'bsp8_0.png' to not be ignored")
	}
}

func TestIgnoreMatcherGlobAndComments(t *testing.T) {
	tmpDir := t.TempDir()
	ignoreFile := filepath.Join(tmpDir, IgnoreFilename)
	content := "# broken masks\n\nbsp1*\n!bsp12_0.png\n"
	if err := os.WriteFile(ignoreFile, []byte(content), 0644); err != nil {
		t.Fatalf("write ignore file: %v", err)
	}

	m, err := NewIgnoreMatcher(ignoreFile)
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"bsp1_0.png", true},
		{"bsp13_0.png", true},
		{"bsp12_0.png", false},
		{"bsp2_0.png", false},
	}
	for _, tt := range tests {
		if got := m.Match(tt.path); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIgnoreMatcherNil(t *testing.T) {
	var m *IgnoreMatcher
	if m.Match("anything") {
		t.Error("nil matcher should not match")
	}
}
