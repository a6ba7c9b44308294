package generate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v6"

	"github.com/ziadkadry99/packdocs/internal/catalog"
)

// OriginURL returns the fetch URL of the origin remote of the git repository
// containing dir, converted to https form.
func OriginURL(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return "", fmt.Errorf("directory is not a git repository: %s", dir)
		}
		return "", fmt.Errorf("cannot open git repository: %w", err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("reading origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return NormalizeRemoteURL(urls[0]), nil
}

// NormalizeRemoteURL rewrites scp-style SSH remotes (git@host:owner/repo.git)
// to https and drops the .git suffix.
func NormalizeRemoteURL(raw string) string {
	u := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(u, "git@"); ok {
		if host, p, ok := strings.Cut(rest, ":"); ok {
			u = "https://" + host + "/" + p
		}
	} else if rest, ok := strings.CutPrefix(u, "ssh://git@"); ok {
		u = "https://" + rest
	}
	return strings.TrimSuffix(u, ".git")
}

// ResolveRepository fills the blanks in configured repository metadata: the
// URL from the origin remote of root, then name and owner from the URL path.
func ResolveRepository(configured catalog.Repository, root string) catalog.Repository {
	repo := configured
	if repo.URL == "" {
		if origin, err := OriginURL(root); err == nil {
			repo.URL = origin
		}
	}
	if repo.URL == "" {
		return repo
	}
	u, err := url.Parse(repo.URL)
	if err != nil {
		return repo
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if last := segments[len(segments)-1]; repo.Name == "" && last != "" {
		repo.Name = strings.TrimSuffix(last, ".git")
	}
	if repo.Owner == "" && len(segments) >= 2 {
		repo.Owner = segments[len(segments)-2]
	}
	return repo
}
