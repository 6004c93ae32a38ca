package render

import (
	"testing"

	"github.com/kerbaras/tracker/pkg/blog"
	"github.com/stretchr/testify/assert"
)

func TestPosts(t *testing.T) {
	items := Posts([]blog.Post{
		{Title: "One", Date: "2024-01-01", File: "one.html"},
		{Title: "draft.md"},
	}, "/blog-posts/")

	assert.Equal(t, []PostItem{
		{Title: "One", Date: "2024-01-01", Link: "/blog-posts/one.html"},
		{Title: "draft.md"},
	}, items)
}

func TestPostsEmpty(t *testing.T) {
	assert.Empty(t, Posts(nil, "/"))
}
