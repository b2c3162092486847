// Package rubric fetches the review rubric document that anchors every
// prompt. The rubric is a Markdown document hosted at a configured URL;
// when the fetch fails after retries, a built-in mobile rubric is used so a
// rubric outage never sinks the run.
package rubric
