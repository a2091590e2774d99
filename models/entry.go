package models

import "time"

// DirectoryEntry is a snapshot of one filesystem object taken while listing
// its parent directory. It is never updated in place; a changed object is
// picked up by listing the directory again.
type DirectoryEntry struct {
	Name         string    `json:"name"`
	AbsolutePath string    `json:"absolutePath"` // containing directory
	FilePath     string    `json:"filePath"`
	IsDir        bool      `json:"isDir"`
	Size         int64     `json:"size"` // 0 for directories
	CreatedAt    time.Time `json:"createdAt"`
	ModifiedAt   time.Time `json:"modifiedAt"`
}

// IsHidden reports whether the entry name carries the hidden-file marker.
func (e DirectoryEntry) IsHidden() bool {
	return IsHiddenName(e.Name)
}

func IsHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
