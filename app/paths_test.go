package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPathsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths := PathsToHome()

	if paths[0] != "/" {
		t.Errorf("expected root first, got %v", paths)
	}
	if paths[len(paths)-1] != home {
		t.Errorf("expected home last, got %v", paths)
	}
	for i := 1; i < len(paths); i++ {
		if filepath.Dir(paths[i]) != paths[i-1] {
			t.Errorf("%s is not the parent of %s", paths[i-1], paths[i])
		}
	}
}

func TestPathsToHomeFallsBackToRoot(t *testing.T) {
	tests := []struct {
		name string
		home string
	}{
		{"empty", ""},
		{"missing", filepath.Join(os.TempDir(), "fbrowser-no-such-home")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", tt.home)
			if got := PathsToHome(); !reflect.DeepEqual(got, []string{"/"}) {
				t.Errorf("expected [/], got %v", got)
			}
		})
	}
}

func TestPathsToRegularFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	writeFile(t, file, "x")

	if got := pathsTo(file); !reflect.DeepEqual(got, []string{"/"}) {
		t.Errorf("expected [/], got %v", got)
	}
}

func TestPathsToCleansInput(t *testing.T) {
	dir := t.TempDir()
	got := pathsTo(dir + "/./")
	if got[len(got)-1] != dir {
		t.Errorf("expected %s last, got %v", dir, got)
	}
}

func TestAncestors(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"/", []string{"/"}},
		{"/a/b", []string{"/", "/a", "/a/b"}},
		{"/a//b/../c/", []string{"/", "/a", "/a/c"}},
	}
	for _, tt := range tests {
		if got := Ancestors(tt.path); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Ancestors(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
