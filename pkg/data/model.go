package data

import (
	"fmt"
	"strconv"
)

// Category is the kind of trackable item, matching the search API's resource names.
type Category string

const (
	Anime Category = "anime"
	Manga Category = "manga"
)

// Categories lists every supported category in display order.
var Categories = []Category{Anime, Manga}

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case Anime, Manga:
		return Category(s), true
	}
	return "", false
}

// CountLabel is the name of the per-item count shown for a category.
func (c Category) CountLabel() string {
	if c == Manga {
		return "Chapters"
	}
	return "Episodes"
}

// ListName identifies one of the two tracked collections.
type ListName string

const (
	Pending   ListName = "pending"
	Completed ListName = "completed"
)

func ParseListName(s string) (ListName, bool) {
	switch ListName(s) {
	case Pending, Completed:
		return ListName(s), true
	}
	return "", false
}

// Other returns the opposite collection.
func (l ListName) Other() ListName {
	if l == Pending {
		return Completed
	}
	return Pending
}

// Title is the human label used by the presenters.
func (l ListName) Title() string {
	if l == Completed {
		return "Read"
	}
	return "To Be Read"
}

// EntryID builds the composite id shared by list entries and search results.
func EntryID(category Category, externalID int) string {
	return fmt.Sprintf("%s-%d", category, externalID)
}

// SplitEntryID is the inverse of EntryID.
func SplitEntryID(id string) (Category, int, error) {
	for _, c := range Categories {
		prefix := string(c) + "-"
		if len(id) > len(prefix) && id[:len(prefix)] == prefix {
			n, err := strconv.Atoi(id[len(prefix):])
			if err != nil {
				return "", 0, fmt.Errorf("invalid id %q: %w", id, err)
			}
			return c, n, nil
		}
	}
	return "", 0, fmt.Errorf("invalid id %q: expected <anime|manga>-<number>", id)
}

// ListEntry is a tracked item. The JSON shape is the persisted format.
type ListEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Category  Category `json:"type"`
	DateAdded string   `json:"dateAdded"`
}

// SearchResult is a normalized record returned by a source. It is never persisted.
type SearchResult struct {
	ExternalID int
	Category   Category
	Title      string
	Status     string
	Count      string // episodes or chapters, "N/A" when unknown
	ImageURL   string
}

func (r SearchResult) ID() string {
	return EntryID(r.Category, r.ExternalID)
}

// HasCount reports whether the source supplied an episode/chapter count.
func (r SearchResult) HasCount() bool {
	return r.Count != "" && r.Count != "N/A"
}
