package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/go-github/v68/github"
)

// ErrNotPullRequest signals a payload with no pull request object, e.g. a
// workflow wired to the wrong trigger. Callers treat it as a clean no-op.
var ErrNotPullRequest = errors.New("event payload has no pull request")

// reviewActions are the pull request actions that trigger a review.
var reviewActions = map[string]bool{
	"opened":           true,
	"synchronize":      true,
	"reopened":         true,
	"ready_for_review": true,
}

// PullRequest holds the PR identity and metadata the pipeline needs.
type PullRequest struct {
	Number  int
	Title   string
	Body    string
	HeadSHA string
	Draft   bool
	Action  string
}

// Load reads and parses the event payload file at path.
func Load(path string) (PullRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PullRequest{}, fmt.Errorf("reading event payload: %w", err)
	}

	var ev github.PullRequestEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return PullRequest{}, fmt.Errorf("parsing event payload: %w", err)
	}

	pr := ev.GetPullRequest()
	if pr == nil || pr.GetNumber() == 0 {
		return PullRequest{}, ErrNotPullRequest
	}

	return PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		HeadSHA: pr.GetHead().GetSHA(),
		Draft:   pr.GetDraft(),
		Action:  ev.GetAction(),
	}, nil
}

// ShouldReview reports whether this event warrants a review run.
// Draft PRs are skipped until they become ready for review. An empty action
// (manual replay) is reviewed.
func (p PullRequest) ShouldReview() bool {
	if p.Draft && p.Action != "ready_for_review" {
		return false
	}
	if p.Action == "" {
		return true
	}
	return reviewActions[p.Action]
}
