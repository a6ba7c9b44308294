package site

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"
	"text/template"

	"github.com/ziadkadry99/packdocs/internal/catalog"
)

// DefaultInstallTemplate produces the installation snippet shown for every pack.
const DefaultInstallTemplate = "git clone {{.RepoURL}}\ncd {{.RepoName}}/{{.Pack}}"

// InstallVars are the fields available to an install template.
type InstallVars struct {
	Pack     string
	RepoURL  string
	RepoName string
	Owner    string
}

// Installer renders installation snippets for packs of one repository.
type Installer struct {
	tmpl *template.Template
	repo catalog.Repository
}

// NewInstaller parses tmpl (DefaultInstallTemplate when empty).
func NewInstaller(tmpl string, repo catalog.Repository) (*Installer, error) {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultInstallTemplate
	}
	t, err := template.New("install").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing install template: %w", err)
	}
	return &Installer{tmpl: t, repo: repo}, nil
}

// Snippet renders the snippet for a pack. Template errors fall back to the
// default layout so a detail view is never left without instructions.
func (i *Installer) Snippet(pack string) string {
	vars := InstallVars{
		Pack:     pack,
		RepoURL:  i.repo.URL,
		RepoName: repoName(i.repo),
		Owner:    i.repo.Owner,
	}
	var buf bytes.Buffer
	if err := i.tmpl.Execute(&buf, vars); err != nil {
		return fmt.Sprintf("git clone %s\ncd %s/%s", vars.RepoURL, vars.RepoName, pack)
	}
	return buf.String()
}

func repoName(repo catalog.Repository) string {
	if repo.Name != "" {
		return repo.Name
	}
	if u, err := url.Parse(repo.URL); err == nil && u.Path != "" {
		return strings.TrimSuffix(path.Base(u.Path), ".git")
	}
	return "."
}
