// Package project identifies the enclosing project for registry
// download tracking. The identity is the GitHub remote URL when one
// exists, so the hash survives checkouts on different machines; a
// repository without a GitHub remote falls back to the working
// directory path.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Hash returns a hex-encoded SHA-256 identifier for the current
// project. It never fails; in the worst case it hashes ".".
func Hash() string {
	if url, ok := githubRemoteURL("."); ok {
		return hashString(url)
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return hashString(cwd)
}

// RepositoryURL returns the normalized GitHub URL of the current
// project's origin remote, when there is one.
func RepositoryURL() (string, bool) {
	return githubRemoteURL(".")
}

// githubRemoteURL reads the origin remote of the repository containing
// path and returns its normalized URL if it points at GitHub.
func githubRemoteURL(path string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", false
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", false
	}
	url := strings.TrimSpace(urls[0])
	if !strings.Contains(url, "github.com") {
		return "", false
	}
	return NormalizeGitHubURL(url), true
}

// NormalizeGitHubURL maps the SSH and HTTPS spellings of a GitHub
// remote to one canonical HTTPS form, so both hash identically.
func NormalizeGitHubURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "git@github.com:"); ok {
		return "https://github.com/" + strings.TrimSuffix(rest, ".git")
	}
	if strings.HasPrefix(url, "https://github.com/") {
		return strings.TrimSuffix(url, ".git")
	}
	return url
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
