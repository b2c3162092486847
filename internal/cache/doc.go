// Package cache provides a file-based cache for LLM review responses.
//
// Cache entries are keyed by a SHA-256 hash of the provider name, model, and
// full review prompt. Each entry stores the raw LLM response string along
// with a creation timestamp and a TTL (in seconds). Expired entries are
// skipped on read and removed lazily.
//
// The default cache directory is a revmob-cache folder under the OS temp
// directory, which keeps repeated runs on the same commit cheap inside a
// single CI runner. All payloads stored in the cache have already been
// through secret redaction.
package cache
