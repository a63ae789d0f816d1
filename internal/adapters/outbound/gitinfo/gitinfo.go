package gitinfo

import (
	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.CommitResolver using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

// CommitHash returns the HEAD commit of the repository containing path.
func (g *GitInfoAdapter) CommitHash(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.Wrapf(err, "opening git repo at %s", path)
	}

	head, err := repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "getting HEAD")
	}

	return head.Hash().String(), nil
}

// HeadCommit is CommitHash with failures reported as "".
func (g *GitInfoAdapter) HeadCommit(path string) string {
	hash, err := g.CommitHash(path)
	if err != nil {
		return ""
	}
	return hash
}
