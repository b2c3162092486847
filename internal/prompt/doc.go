// Package prompt builds the system and user prompts sent to the review
// provider.
//
// The system prompt pins the reviewer persona and the exact JSON object
// schema the model must return. The user prompt layers review guidance, the
// rubric, detected stack hints, the PR overview, and the trimmed per-file
// diffs.
package prompt
