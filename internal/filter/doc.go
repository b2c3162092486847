// Package filter selects which pull request files are worth reviewing and
// bounds each file's patch to a prompt-sized budget.
//
// Files are kept when their path matches the configured glob list and no
// built-in ignore rule (build output, lockfiles, binary assets, IDE
// directories). Kept patches are trimmed to a character cap with a marker
// appended when truncation occurred, and the result set is capped at a
// maximum file count in original order.
package filter
