package app

import "github.com/ogefest/fbrowser/models"

// Stats counts the directories and files of the current listing.
func (m *Model) Stats() models.ListingStats {
	var st models.ListingStats
	for _, e := range m.store.entries {
		if e.IsDir {
			st.Dirs++
			continue
		}
		st.Files++
		st.TotalSize += e.Size
	}
	return st
}
