// Package ghpr wraps the two GitHub API operations the reviewer needs:
// listing a pull request's changed files and posting the review comment.
// Authentication is either the Actions-provided token or a GitHub App
// installation.
package ghpr
