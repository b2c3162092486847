package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/revmob/internal/filter"
)

const systemPrompt = `You are a senior staff mobile engineer reviewing pull requests with precision and practicality. Review ONLY the provided diffs.

Rules:
1. Focus on correctness, performance, security, readability/maintainability, and testing. Do not speculate beyond the diffs.
2. Be concise and actionable. Every finding should include a concrete suggestion, with a short code snippet when helpful.
3. Rate each finding's severity as "low", "medium", or "high" and your confidence from 0.0 to 1.0.
4. Assess the overall merge risk of the PR as "low", "medium", or "high" and provide a short pre-merge checklist.

You MUST respond with ONLY a JSON object. No markdown fences, no explanation, no preamble. The exact structure:
{
  "summary": "High-level summary of the PR",
  "risk": "low|medium|high",
  "checklist": ["pre-merge item", "..."],
  "findings": [
    {
      "category": "correctness|performance|security|readability|testing",
      "severity": "low|medium|high",
      "title": "Short descriptive title",
      "message": "What is wrong and why it matters",
      "suggestion": "How to fix it",
      "file": "relative/file/path",
      "confidence": 0.0
    }
  ]
}

If the diffs raise no issues, return the object with an empty findings array.`

// SystemPrompt returns the system prompt for the LLM.
func SystemPrompt() string {
	return systemPrompt
}

// stackHintRules map filename shapes to the mobile technologies they imply.
var stackHintRules = []struct {
	re   *regexp.Regexp
	hint string
}{
	{regexp.MustCompile(`\.(kt|kts|java)\b`), "Android/Kotlin"},
	{regexp.MustCompile(`(?i)\bcompose\b|@Composable\b`), "Jetpack Compose"},
	{regexp.MustCompile(`\.(swift|mm|m)\b`), "iOS/Swift"},
	{regexp.MustCompile(`\bSwiftUI\b|@State(Object)?\b`), "SwiftUI"},
	{regexp.MustCompile(`(?i)\bgradle(\.kts)?\b|\bproguard\b`), "Gradle/ProGuard"},
	{regexp.MustCompile(`\bplist\b`), "Info.plist"},
}

// StackHints infers the mobile technologies touched by the changed files,
// so the model tailors its review. Returns a generic hint when nothing
// specific matches.
func StackHints(files []filter.File) string {
	var names strings.Builder
	for _, f := range files {
		names.WriteString(f.Path)
		names.WriteString(" ")
	}

	seen := make(map[string]bool)
	var hints []string
	for _, rule := range stackHintRules {
		if rule.re.MatchString(names.String()) && !seen[rule.hint] {
			seen[rule.hint] = true
			hints = append(hints, rule.hint)
		}
	}
	if len(hints) == 0 {
		return "Mobile (Android/iOS) code"
	}
	sort.Strings(hints)
	return strings.Join(hints, ", ")
}

// Build constructs the user prompt from the rubric, PR metadata, and the
// filtered, trimmed diffs. Pure function.
func Build(rubricText, title, body string, files []filter.File) string {
	var b strings.Builder

	b.WriteString("Review this mobile pull request against the rubric below.\n\n")
	b.WriteString(rubricText)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Detected stack hints: %s\n\n", StackHints(files))

	fmt.Fprintf(&b, "PR TITLE: %s\n\n", title)
	if body == "" {
		body = "(no description)"
	}
	fmt.Fprintf(&b, "PR DESCRIPTION:\n%s\n", body)

	b.WriteString("\n--- BEGIN DIFFS ---\n")
	for i, f := range files {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "FILE: %s\n", f.Path)
		fmt.Fprintf(&b, "STATUS: %s\n", f.Status)
		fmt.Fprintf(&b, "CHANGES: +%d / -%d\n", f.Additions, f.Deletions)
		fmt.Fprintf(&b, "PATCH (trimmed):\n%s", f.Patch)
	}
	b.WriteString("\n--- END DIFFS ---\n")

	return b.String()
}
