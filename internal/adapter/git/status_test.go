package git

import (
	"testing"

	"github.com/mhenry/prreview/internal/domain"
)

func TestStatusFromPorcelain(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"A  new_file.go", domain.FileStatusAdded},
		{"?? untracked.go", domain.FileStatusAdded},
		{" D removed.go", domain.FileStatusRemoved},
		{"R  old.go -> new.go", domain.FileStatusRenamed},
		{"M  main.go", domain.FileStatusModified},
		{" M main.go", domain.FileStatusModified},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := statusFromPorcelain(tt.line); got != tt.expected {
				t.Errorf("statusFromPorcelain(%q) = %q, want %q", tt.line, got, tt.expected)
			}
		})
	}
}

func TestSplitStatusPath(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantPath    string
		wantOldPath string
	}{
		{"modified", "M  main.go", "main.go", ""},
		{"renamed", "R  old_name.go -> new_name.go", "new_name.go", "old_name.go"},
		{"renamed with spaces", "R  old name.go -> new name.go", "new name.go", "old name.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPath, gotOldPath := splitStatusPath(tt.line)
			if gotPath != tt.wantPath || gotOldPath != tt.wantOldPath {
				t.Errorf("splitStatusPath(%q) = (%q, %q), want (%q, %q)",
					tt.line, gotPath, gotOldPath, tt.wantPath, tt.wantOldPath)
			}
		})
	}
}

func TestIsBinaryPatch(t *testing.T) {
	tests := []struct {
		name     string
		patch    string
		expected bool
	}{
		{"binary files differ", "Binary files a/image.png and b/image.png differ\n", true},
		{"git binary patch", "GIT binary patch\nliteral 1234\n", true},
		{"text diff", "@@ -1,3 +1,4 @@\n context\n+added\n", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBinaryPatch(tt.patch); got != tt.expected {
				t.Errorf("isBinaryPatch(%q) = %v, want %v", tt.patch, got, tt.expected)
			}
		})
	}
}
