// Package redact removes secrets from pull request patches before they are
// sent to any LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens, and provider-specific tokens (Anthropic, OpenAI, GitHub, Slack).
// Mobile diffs routinely touch gradle.properties, plist and xml files where
// keys end up hardcoded, so every patch passes through here.
package redact
