package models

// ListingStats summarises the current listing.
type ListingStats struct {
	Dirs      int   `json:"dirs"`
	Files     int   `json:"files"`
	TotalSize int64 `json:"totalSize"`
}
