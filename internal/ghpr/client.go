package ghpr

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v68/github"

	"github.com/dshills/revmob/internal/filter"
)

// Client performs pull request operations against one repository.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// New wraps an already-authenticated go-github client for the given
// "owner/repo" repository.
func New(gh *github.Client, repository string) (*Client, error) {
	owner, repo, err := splitRepository(repository)
	if err != nil {
		return nil, err
	}
	return &Client{gh: gh, owner: owner, repo: repo}, nil
}

// NewTokenClient builds a Client from a personal or Actions token.
func NewTokenClient(token, repository string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN is not set")
	}
	return New(github.NewClient(nil).WithAuthToken(token), repository)
}

// NewAppClient builds a Client authenticated as a GitHub App installation.
func NewAppClient(appID, installationID int64, privateKeyPath, repository string) (*Client, error) {
	itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("creating app installation transport: %w", err)
	}
	return New(github.NewClient(&http.Client{Transport: itr}), repository)
}

func splitRepository(repository string) (owner, repo string, err error) {
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository %q is not in owner/repo form", repository)
	}
	return parts[0], parts[1], nil
}

// ChangedFiles returns every file changed in the pull request, following
// pagination. Order is the API's order, which the filter preserves.
func (c *Client) ChangedFiles(ctx context.Context, number int) ([]filter.File, error) {
	var files []filter.File
	opts := &github.ListOptions{PerPage: 100}

	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, c.wrapErr("listing changed files", number, err)
		}
		for _, f := range page {
			files = append(files, filter.File{
				Path:      f.GetFilename(),
				Status:    f.GetStatus(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Patch:     f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return files, nil
}

// PostComment posts body as an issue comment on the pull request.
func (c *Client) PostComment(ctx context.Context, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, comment); err != nil {
		return c.wrapErr("posting comment", number, err)
	}
	return nil
}

func (c *Client) wrapErr(op string, number int, err error) error {
	if resp, ok := err.(*github.ErrorResponse); ok && resp.Response != nil {
		switch resp.Response.StatusCode {
		case http.StatusNotFound:
			return &NotFoundError{Owner: c.owner, Repo: c.repo, Number: number}
		case http.StatusForbidden:
			return &PermissionError{Op: op}
		}
	}
	return fmt.Errorf("%s for %s/%s#%d: %w", op, c.owner, c.repo, number, err)
}
