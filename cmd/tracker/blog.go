package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kerbaras/tracker/pkg/blog"
	"github.com/kerbaras/tracker/pkg/integrations"
	"github.com/kerbaras/tracker/pkg/render"
	"github.com/kerbaras/tracker/pkg/utils"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Build and read the blog post index",
}

var blogIndexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Write index.json for the markdown posts in a directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		posts, err := blog.BuildIndex(dir)
		cobra.CheckErr(err)

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = filepath.Join(dir, blog.IndexName)
		}
		cobra.CheckErr(blog.WriteIndex(out, posts))
		fmt.Printf("✅ Generated %s with %d posts\n", out, len(posts))

		htmlDir, _ := cmd.Flags().GetString("html")
		if htmlDir == "" {
			return
		}
		written, err := blog.RenderHTML(dir, htmlDir)
		cobra.CheckErr(err)
		fmt.Printf("📝 Rendered %d posts to %s\n", len(written), htmlDir)
	},
}

var blogListCmd = &cobra.Command{
	Use:   "list [index.json | url]",
	Short: "List posts from an index file or URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source := args[0]

		var (
			posts []blog.Post
			err   error
		)
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			posts, err = blog.FetchIndex(cmd.Context(), utils.NewAPI("", cfg.API.Timeout), source)
		} else {
			posts, err = blog.LoadIndex(source)
		}
		cobra.CheckErr(err)

		prefix := cfg.Blog.LinkPrefix
		if cmd.Flags().Changed("prefix") {
			prefix, _ = cmd.Flags().GetString("prefix")
		}

		items := render.Posts(posts, prefix)
		if len(items) == 0 {
			fmt.Println("📭 No posts in index.")
			return
		}

		headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers("Date", "Title", "Link")
		for _, item := range items {
			t.Row(item.Date, truncateString(item.Title, 50), item.Link)
		}
		fmt.Println(t)
	},
}

var blogEpubCmd = &cobra.Command{
	Use:   "epub [dir]",
	Short: "Compile the markdown posts in a directory into an EPUB",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := blog.Scan(args[0])
		cobra.CheckErr(err)
		if len(sources) == 0 {
			fmt.Println("📭 No markdown posts found.")
			return
		}

		var opts integrations.EPubOptions
		opts.Title, _ = cmd.Flags().GetString("title")
		opts.Author, _ = cmd.Flags().GetString("author")
		opts.CoverPath, _ = cmd.Flags().GetString("cover")
		output, _ := cmd.Flags().GetString("output")

		builder, err := integrations.NewEPubBuilder()
		cobra.CheckErr(err)
		defer builder.Close()

		fmt.Printf("📖 Compiling %d posts...\n", len(sources))
		path, err := builder.CreateEPub(sources, opts, output)
		cobra.CheckErr(err)
		fmt.Printf("✅ EPUB written to %s\n", path)
	},
}

func init() {
	blogIndexCmd.Flags().StringP("output", "o", "", "index path (default DIR/index.json)")
	blogIndexCmd.Flags().String("html", "", "also render posts to HTML in this directory")

	blogListCmd.Flags().String("prefix", "", "link prefix (default from config)")

	blogEpubCmd.Flags().StringP("output", "o", "", "output EPUB path")
	blogEpubCmd.Flags().String("title", "Posts", "book title")
	blogEpubCmd.Flags().String("author", "", "book author")
	blogEpubCmd.Flags().String("cover", "", "cover image (PNG or JPEG)")

	blogCmd.AddCommand(blogIndexCmd)
	blogCmd.AddCommand(blogListCmd)
	blogCmd.AddCommand(blogEpubCmd)
	rootCmd.AddCommand(blogCmd)
}
