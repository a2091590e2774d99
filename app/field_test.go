package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ogefest/fbrowser/models"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{500, "500 bytes"},
		{1023, "1023 bytes"},
		{1024, "1 kb"},
		{2048, "2 kb"},
		{2047, "1 kb"},
		{1024*1024 - 1, "1023 kb"},
		{1024 * 1024, "1mb"},
		{5 * 1024 * 1024, "5mb"},
		{3*1024*1024*1024 + 5, "3072mb"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestIconSource(t *testing.T) {
	tests := []struct {
		name  string
		entry models.DirectoryEntry
		want  string
	}{
		{"jpg", models.DirectoryEntry{Name: "cat.jpg", FilePath: "/pics/cat.jpg"}, "file:///pics/cat.jpg"},
		{"png", models.DirectoryEntry{Name: "a b.png", FilePath: "/pics/a b.png"}, "file:///pics/a%20b.png"},
		{"upper case extension is a document", models.DirectoryEntry{Name: "CAT.JPG", FilePath: "/pics/CAT.JPG"}, DocumentIcon},
		{"directory", models.DirectoryEntry{Name: "pics", FilePath: "/pics", IsDir: true}, DirectoryIcon},
		{"image named directory", models.DirectoryEntry{Name: "album.png", FilePath: "/album.png", IsDir: true}, "file:///album.png"},
		{"document", models.DirectoryEntry{Name: "notes.txt", FilePath: "/notes.txt"}, DocumentIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconSource(tt.entry); got != tt.want {
				t.Errorf("IconSource = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldProjection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.txt"), strings.Repeat("s", 500))
	writeFile(t, filepath.Join(root, "medium.dat"), strings.Repeat("m", 2048))
	big := filepath.Join(root, "large.iso")
	writeFile(t, big, "")
	if err := os.Truncate(big, 5*1024*1024); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "photo.png"), "png")
	mkdir(t, filepath.Join(root, "docs"))

	m := loadedModel(t, root)

	t.Run("size", func(t *testing.T) {
		want := map[string]string{
			"small.txt":  "500 bytes",
			"medium.dat": "2 kb",
			"large.iso":  "5mb",
			"docs":       "0 bytes",
		}
		for name, size := range want {
			if got := m.Field(m.RowOf(name), "fileSize"); got != size {
				t.Errorf("%s: fileSize = %v, want %q", name, got, size)
			}
		}
	})

	t.Run("icons", func(t *testing.T) {
		if got := m.Field(m.RowOf("photo.png"), "iconSource"); got != "file://"+filepath.Join(root, "photo.png") {
			t.Errorf("unexpected image icon %v", got)
		}
		if got := m.Field(m.RowOf("docs"), "iconSource"); got != DirectoryIcon {
			t.Errorf("unexpected directory icon %v", got)
		}
		if got := m.Field(m.RowOf("small.txt"), "iconSource"); got != DocumentIcon {
			t.Errorf("unexpected document icon %v", got)
		}
	})

	t.Run("direct attributes", func(t *testing.T) {
		row := m.RowOf("small.txt")
		if got := m.Field(row, "filePath"); got != filepath.Join(root, "small.txt") {
			t.Errorf("filePath = %v", got)
		}
		if got := m.Field(row, "isDir"); got != false {
			t.Errorf("isDir = %v", got)
		}
		if got := m.Field(row, "isFile"); got != true {
			t.Errorf("isFile = %v", got)
		}
		if got := m.Field(m.RowOf("docs"), "isDir"); got != true {
			t.Errorf("docs isDir = %v", got)
		}

		info, err := os.Stat(filepath.Join(root, "small.txt"))
		if err != nil {
			t.Fatal(err)
		}
		modified, ok := m.Field(row, "modifiedDate").(time.Time)
		if !ok || !modified.Equal(info.ModTime()) {
			t.Errorf("modifiedDate = %v, want %v", modified, info.ModTime())
		}
		created, ok := m.Field(row, "creationDate").(time.Time)
		if !ok || created.IsZero() {
			t.Errorf("creationDate = %v", created)
		}
	})

	t.Run("out of range and unknown role", func(t *testing.T) {
		if m.RowCount() != 5 {
			t.Fatalf("expected 5 rows, got %d", m.RowCount())
		}
		for _, row := range []int{-1, 5, 999} {
			if v := m.Field(row, "fileName"); v != nil {
				t.Errorf("Field(%d) = %v, want nil", row, v)
			}
		}
		if v := m.Field(0, "thumbnail"); v != nil {
			t.Errorf("unknown role returned %v", v)
		}
		if v := m.Field(0, "FileName"); v != nil {
			t.Errorf("role keys are case sensitive, got %v", v)
		}
	})
}

func TestFieldOnThreeRowListing(t *testing.T) {
	m := loadedModel(t, sampleDir(t))
	if v := m.Field(999, "fileName"); v != nil {
		t.Errorf("expected nil, got %v", v)
	}
}

func TestValidEntryName(t *testing.T) {
	for name, want := range map[string]bool{
		"z.txt":   true,
		".config": true,
		"":        false,
		".":       false,
		"..":      false,
		"a/b":     false,
		"nul\x00": false,
	} {
		if got := ValidEntryName(name); got != want {
			t.Errorf("ValidEntryName(%q) = %v, want %v", name, got, want)
		}
	}
}
