package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/tracker/pkg/blog"
)

// EPubOptions describes a posts export.
type EPubOptions struct {
	Title     string
	Author    string
	CoverPath string // optional PNG or JPEG
}

type EPubBuilder struct {
	workDir string
}

func NewEPubBuilder() (*EPubBuilder, error) {
	dir, err := os.MkdirTemp("", "tracker-epub-*")
	if err != nil {
		return nil, err
	}
	return &EPubBuilder{workDir: dir}, nil
}

func (p *EPubBuilder) Close() error {
	return os.RemoveAll(p.workDir)
}

// CreateEPub compiles the posts, in order, into a single EPUB at outputPath.
func (p *EPubBuilder) CreateEPub(posts []blog.Source, opts EPubOptions, outputPath string) (string, error) {
	if len(posts) == 0 {
		return "", fmt.Errorf("no posts to compile")
	}

	title := opts.Title
	if title == "" {
		title = "Posts"
	}
	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	if opts.Author != "" {
		e.SetAuthor(opts.Author)
	}
	e.SetLang("en")

	if opts.CoverPath != "" {
		if err := p.addCover(e, opts.CoverPath, title); err != nil {
			return "", err
		}
	}

	for _, post := range posts {
		if err := p.addPost(e, post); err != nil {
			return "", fmt.Errorf("failed to add post %s: %w", post.Filename, err)
		}
	}

	if outputPath == "" {
		outputPath = sanitizeFilename(title) + ".epub"
	}
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

func (p *EPubBuilder) addCover(e *epub.Epub, coverPath, title string) error {
	f, err := os.Open(coverPath)
	if err != nil {
		return fmt.Errorf("failed to open cover: %w", err)
	}
	defer f.Close()

	scaled, err := ScaleCover(f)
	if err != nil {
		return fmt.Errorf("failed to process cover: %w", err)
	}
	scaledPath := filepath.Join(p.workDir, "cover.jpg")
	if err := os.WriteFile(scaledPath, scaled, 0644); err != nil {
		return err
	}

	internalPath, err := e.AddImage(scaledPath, "cover.jpg")
	if err != nil {
		return fmt.Errorf("failed to add cover image: %w", err)
	}
	body := fmt.Sprintf(`<div class="cover"><img src="%s" alt="%s" style="width:100%%;height:auto;"/></div>`,
		internalPath, html.EscapeString(title))
	if _, err := e.AddSection(body, "Cover", "cover.xhtml", ""); err != nil {
		return fmt.Errorf("failed to add cover section: %w", err)
	}
	return nil
}

func (p *EPubBuilder) addPost(e *epub.Epub, post blog.Source) error {
	rendered, err := blog.RenderMarkdown(post.Body)
	if err != nil {
		return err
	}

	title := post.Post().Title
	var content strings.Builder
	content.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(title)))
	if date := post.FrontMatter["date"]; date != "" {
		content.WriteString(fmt.Sprintf("<p><em>%s</em></p>\n", html.EscapeString(date)))
	}
	content.WriteString(rendered)

	if _, err := e.AddSection(content.String(), title, "", ""); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	return nil
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
