// Package github implements the submissions.Archiver port using the official
// go-github library. Wire it up with an authenticated *github.Client from
// internal/platform/github.
package github

import (
	"context"
	"errors"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/crewsafe/intake/apps/server/internal/submissions"
)

// Archive stores submissions through the GitHub contents API, one "create
// file" call per submission. go-github base64-encodes the content as the API
// requires. No retry: the single attempt either succeeds or its failure is
// reported to the caller.
type Archive struct {
	gh     *gogithub.Client
	owner  string
	repo   string
	branch string
}

// NewArchive creates an Archive writing to the given repository and branch.
func NewArchive(gh *gogithub.Client, owner, repo, branch string) *Archive {
	return &Archive{gh: gh, owner: owner, repo: repo, branch: branch}
}

// Put creates the file described by d in the target repository.
func (a *Archive) Put(ctx context.Context, d submissions.Descriptor) error {
	opts := &gogithub.RepositoryContentFileOptions{
		Message: gogithub.Ptr(d.Message),
		Content: d.Content,
		Branch:  gogithub.Ptr(a.branch),
	}
	_, _, err := a.gh.Repositories.CreateFile(ctx, a.owner, a.repo, d.Path, opts)
	if err == nil {
		return nil
	}

	var remote *gogithub.ErrorResponse
	if errors.As(err, &remote) {
		status := 0
		if remote.Response != nil {
			status = remote.Response.StatusCode
		}
		return submissions.RemoteRejectedError{StatusCode: status, Message: remote.Message}
	}
	return submissions.ArchiveUnavailableError{Err: err}
}
