// Revmob is a GitHub Action that reviews mobile pull requests with an LLM
// provider and posts one structured review comment.
//
// It reads the pull request event payload, filters the changed files down to
// mobile-relevant sources (Kotlin, Swift, Gradle, manifests, plists), trims
// oversized patches, loads a review rubric from a central URL, asks the
// configured provider for a structured review, and posts the rendered
// markdown back on the PR.
//
// Usage:
//
//	revmob run          # review the PR that triggered this workflow run
//	revmob version      # print the version
//
// Configuration is taken from the action's environment; see action.yml for
// the full list of inputs.
package main
