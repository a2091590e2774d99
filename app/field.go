package app

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ogefest/fbrowser/models"
)

const (
	DirectoryIcon = "image://theme/icon-m-common-directory"
	DocumentIcon  = "image://theme/icon-m-content-document"
)

var imageExtensions = []string{".jpg", ".png"}

// FormatSize renders a byte count for display. Each tier uses integer
// division, so the result is lossy.
func FormatSize(size int64) string {
	kb := size / 1024
	if kb < 1 {
		return strconv.FormatInt(size, 10) + " bytes"
	}
	if kb < 1024 {
		return strconv.FormatInt(kb, 10) + " kb"
	}
	return strconv.FormatInt(kb/1024, 10) + "mb"
}

// IconSource picks the icon hint for e. Images point at themselves so the
// view can show them directly; the extension check wins over IsDir.
func IconSource(e models.DirectoryEntry) string {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(e.Name, ext) {
			return (&url.URL{Scheme: "file", Path: e.FilePath}).String()
		}
	}
	if e.IsDir {
		return DirectoryIcon
	}
	return DocumentIcon
}

// Project returns the value of role r for e, or nil for an invalid role.
func Project(e models.DirectoryEntry, r Role) any {
	switch r {
	case RoleFileName:
		return e.Name
	case RoleCreationDate:
		return e.CreatedAt
	case RoleModifiedDate:
		return e.ModifiedAt
	case RoleFileSize:
		return FormatSize(e.Size)
	case RoleIconSource:
		return IconSource(e)
	case RoleFilePath:
		return e.FilePath
	case RoleIsDir:
		return e.IsDir
	case RoleIsFile:
		return !e.IsDir
	}
	return nil
}
