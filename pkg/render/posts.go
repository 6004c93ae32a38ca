package render

import (
	"strings"

	"github.com/kerbaras/tracker/pkg/blog"
)

type PostItem struct {
	Title string
	Date  string
	Link  string // empty when the post has no file
}

// Posts projects an index into listing rows linking to prefix+file.
func Posts(posts []blog.Post, prefix string) []PostItem {
	items := make([]PostItem, len(posts))
	for i, p := range posts {
		items[i] = PostItem{Title: p.Title, Date: p.Date}
		if p.File != "" {
			items[i].Link = strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(p.File, "/")
		}
	}
	return items
}
