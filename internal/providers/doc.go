// Package providers implements the Reviewer interface for each supported
// LLM provider.
//
// Supported providers: OpenAI (GPT, the default) and Anthropic (Claude),
// each on its official SDK.
//
// All providers share a common retry helper with exponential back-off for
// rate-limit and transient server errors; authentication and model errors
// surface immediately as typed errors.
//
// Use [New] to obtain a Reviewer by provider name and model string.
package providers
