package app

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ogefest/fbrowser/models"
)

// Sorter orders entries directories first, then by locale collation of the
// name. A Sorter is not safe for concurrent use.
type Sorter struct {
	coll *collate.Collator
}

// NewSorter builds a Sorter for a BCP 47 locale. An empty or unparsable
// locale falls back to the root collation.
func NewSorter(locale string) *Sorter {
	tag := language.Und
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}
	return &Sorter{coll: collate.New(tag)}
}

// Compare returns a negative number when a sorts before b.
func (s *Sorter) Compare(a, b models.DirectoryEntry) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	if c := s.coll.CompareString(a.Name, b.Name); c != 0 {
		return c
	}
	// Collation ties (e.g. canonically equivalent names) still need a
	// deterministic order.
	return strings.Compare(a.Name, b.Name)
}

// Sort orders entries in place.
func (s *Sorter) Sort(entries []models.DirectoryEntry) {
	slices.SortStableFunc(entries, s.Compare)
}
