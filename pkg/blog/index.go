// Package blog builds and reads the JSON post index consumed by the blog listing.
package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kerbaras/tracker/pkg/utils"
)

const IndexName = "index.json"

// Post is one record of index.json.
type Post struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	File  string `json:"file,omitempty"`
}

// Source is a markdown file found while scanning a posts directory.
type Source struct {
	Filename    string
	FrontMatter map[string]string
	Body        string
}

func (s Source) Post() Post {
	title := s.FrontMatter["title"]
	if title == "" {
		title = s.Filename
	}
	return Post{
		Title: title,
		Date:  s.FrontMatter["date"],
		File:  s.FrontMatter["path"],
	}
}

// Scan reads every *.md file directly inside dir, ordered by filename.
func Scan(dir string) ([]Source, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts directory: %w", err)
	}

	var out []Source
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name(), err)
		}
		fm, body := splitFrontMatter(string(raw))
		out = append(out, Source{Filename: f.Name(), FrontMatter: fm, Body: body})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

func BuildIndex(dir string) ([]Post, error) {
	srcs, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	posts := make([]Post, len(srcs))
	for i, s := range srcs {
		posts[i] = s.Post()
	}
	return posts, nil
}

// WriteIndex writes posts as two-space indented JSON.
func WriteIndex(path string, posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}
	out, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

func LoadIndex(path string) ([]Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("malformed index %s: %w", path, err)
	}
	return posts, nil
}

// FetchIndex downloads an index.json served over HTTP.
func FetchIndex(ctx context.Context, api *utils.API, rawURL string) ([]Post, error) {
	var posts []Post
	if err := api.GetURL(ctx, rawURL, &posts); err != nil {
		return nil, fmt.Errorf("failed to fetch index: %w", err)
	}
	return posts, nil
}
