package pathutil

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestExpandWith(t *testing.T) {
	home := func() (string, error) { return "/home/dev", nil }
	env := func(key string) string {
		if key == "CODE" {
			return "/srv/code"
		}
		return ""
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde only", "~", "/home/dev"},
		{"tilde prefix", "~/src", filepath.Join("/home/dev", "src")},
		{"nested tilde", "~/src/work", filepath.Join("/home/dev", "src/work")},
		{"tilde user form untouched", "~other/src", "~other/src"},
		{"absolute", "/opt/repos", "/opt/repos"},
		{"relative", "repos", "repos"},
		{"env var", "$CODE/repos", "/srv/code/repos"},
		{"braced env var", "${CODE}/repos", "/srv/code/repos"},
		{"unset env var", "$MISSING/repos", "/repos"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandWith(tt.in, home, env); got != tt.want {
				t.Errorf("ExpandWith(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandWith_HomeUnavailable(t *testing.T) {
	home := func() (string, error) { return "", errors.New("no home") }
	env := func(string) string { return "" }

	if got := ExpandWith("~/src", home, env); got != "~/src" {
		t.Errorf("ExpandWith() = %q, want %q", got, "~/src")
	}
}

func TestBasename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/r/proj-a", "proj-a"},
		{"/r/proj-a/", "proj-a"},
		{"proj-b", "proj-b"},
		{"/", "/"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Basename(tt.in); got != tt.want {
			t.Errorf("Basename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
