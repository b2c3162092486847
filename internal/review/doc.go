// Package review contains the core types and pipeline for LLM-based review
// of mobile pull requests.
//
// It defines the Finding, Report, Risk, and Severity types, orchestrates the
// changed-file listing, mobile filtering, secret redaction, rubric loading,
// and prompt assembly stages, and parses the structured JSON object the
// provider returns. A malformed response gets exactly one repair pass before
// the run fails.
//
// The pipeline produces a Report and never posts anything itself; rendering
// and delivery of the PR comment belong to the caller.
package review
