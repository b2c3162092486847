// Package event reads the GitHub Actions event payload that triggered the
// run and decides whether it warrants a review.
//
// Only pull request payloads are accepted; anything else yields
// ErrNotPullRequest, which callers treat as a clean no-op. Draft pull
// requests are skipped until they become ready for review.
package event
