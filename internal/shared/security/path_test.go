package security

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveWithin(t *testing.T) {
	base := t.TempDir()

	got, err := ResolveWithin(base, "scan_1", "scan.json")
	if err != nil {
		t.Fatalf("ResolveWithin failed: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("expected absolute path, got %s", got)
	}
	want := filepath.Join(base, "scan_1", "scan.json")
	if got != want {
		t.Fatalf("resolved %s, want %s", got, want)
	}
}

func TestResolveWithinBlocksTraversal(t *testing.T) {
	base := t.TempDir()

	cases := [][]string{
		{".."},
		{"..", "escape"},
		{"scan_1", "..", "..", "etc", "passwd"},
		{"../../../etc/passwd"},
	}
	for _, elems := range cases {
		if _, err := ResolveWithin(base, elems...); !errors.Is(err, ErrPathEscape) {
			t.Errorf("ResolveWithin(%v): expected ErrPathEscape, got %v", elems, err)
		}
	}
}

func TestResolveWithinAllowsInternalDotDot(t *testing.T) {
	base := t.TempDir()

	// Traversal that stays inside the base is fine after cleaning.
	got, err := ResolveWithin(base, "a", "..", "b")
	if err != nil {
		t.Fatalf("ResolveWithin failed: %v", err)
	}
	if got != filepath.Join(base, "b") {
		t.Fatalf("resolved %s, want %s", got, filepath.Join(base, "b"))
	}
}

func TestResolveWithinRequiresBase(t *testing.T) {
	_, err := ResolveWithin("", "scan_1")
	if err == nil || !strings.Contains(err.Error(), "base directory is required") {
		t.Fatalf("expected base directory error, got %v", err)
	}
}

func TestResolveWithinNoElements(t *testing.T) {
	base := t.TempDir()
	got, err := ResolveWithin(base)
	if err != nil {
		t.Fatalf("ResolveWithin failed: %v", err)
	}
	if got != base {
		t.Fatalf("resolved %s, want base %s", got, base)
	}
}

func TestIsValidPath(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/var/data/scan_1", true},
		{"relative/path", true},
		{"", false},
		{"../escape", false},
		{"/var/data/../../etc", false},
		{"/", false},
	}
	for _, tc := range cases {
		if got := IsValidPath(tc.path); got != tc.want {
			t.Errorf("IsValidPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
