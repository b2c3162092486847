// Package cli wires together the Cobra command tree for the revmob binary.
//
// It defines the root command and subcommands (run, version), reads the
// action configuration from the environment, invokes the review pipeline,
// posts the resulting PR comment, and returns deterministic exit codes for
// CI gating.
package cli
