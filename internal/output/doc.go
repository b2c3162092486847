// Package output renders review reports as GitHub-flavored markdown.
//
// Comment produces the PR comment body with findings grouped by category
// and sorted by severity. WriteJobSummary mirrors the same markdown into
// the workflow job summary when GITHUB_STEP_SUMMARY is available.
package output
