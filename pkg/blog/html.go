package blog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer escapes raw HTML found in posts.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func RenderMarkdown(body string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTMLName is the output file for a post: its front-matter path, else the
// markdown file stem, with an .html extension.
func (s Source) HTMLName() string {
	name := s.FrontMatter["path"]
	if name == "" {
		name = strings.TrimSuffix(s.Filename, ".md")
	}
	name = filepath.Base(name)
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return name
}

// RenderHTML renders every post in dir into outDir and returns the written paths.
func RenderHTML(dir, outDir string) ([]string, error) {
	srcs, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, s := range srcs {
		html, err := RenderMarkdown(s.Body)
		if err != nil {
			return written, fmt.Errorf("failed to render %s: %w", s.Filename, err)
		}
		path := filepath.Join(outDir, s.HTMLName())
		if err := os.WriteFile(path, []byte(html), 0644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
