package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// readmeTemplate wraps a rendered pack README.
const readmeTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <header class="site-header">
    <h1>{{.Title}}</h1>
    <p class="subtitle"><a href="{{.IndexHref}}" style="color: inherit">&larr; {{.ProjectName}}</a></p>
  </header>
  <article class="readme">
{{.Content}}
  </article>
</body>
</html>
`

type readmeData struct {
	Title       string
	ProjectName string
	BasePath    string
	IndexHref   string
	Content     template.HTML
}

// ReadmeRenderer converts pack README.md files into standalone pages. Raw HTML
// in the markdown is omitted since READMEs come from the packs being documented.
type ReadmeRenderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// NewReadmeRenderer creates a renderer with GFM and syntax highlighting.
func NewReadmeRenderer() *ReadmeRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &ReadmeRenderer{
		md:   md,
		tmpl: template.Must(template.New("readme").Parse(readmeTemplate)),
	}
}

// ReadmePage describes where a README page is rendered.
type ReadmePage struct {
	Title       string
	ProjectName string
	// BasePath prefixes style.css; IndexHref links back to the catalog.
	BasePath  string
	IndexHref string
}

// Render converts markdown source into a full HTML page on w.
func (r *ReadmeRenderer) Render(w io.Writer, source []byte, page ReadmePage) error {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}
	return r.tmpl.Execute(w, readmeData{
		Title:       page.Title,
		ProjectName: page.ProjectName,
		BasePath:    page.BasePath,
		IndexHref:   page.IndexHref,
		Content:     template.HTML(buf.String()),
	})
}

// ReadmePath locates a pack's README.md under root. packPath is the pack's
// recorded path; the pack name is used when it is empty.
func ReadmePath(root, packPath, name string) string {
	dir := packPath
	if dir == "" {
		dir = name
	}
	return filepath.Join(root, filepath.FromSlash(dir), "README.md")
}

// ReadReadme returns the README source for a pack. Pack paths that would leave
// root are refused.
func ReadReadme(root, packPath, name string) ([]byte, error) {
	dir := packPath
	if dir == "" {
		dir = name
	}
	if !filepath.IsLocal(filepath.FromSlash(dir)) {
		return nil, fmt.Errorf("pack path %q is outside the root directory", dir)
	}
	data, err := os.ReadFile(ReadmePath(root, packPath, name))
	if err != nil {
		return nil, fmt.Errorf("reading README for %s: %w", name, err)
	}
	return data, nil
}
