// Package config loads action configuration from environment variables,
// with optional per-repository overrides from a .revmob.yml file.
//
// Environment variables map directly onto the action's inputs. The YAML
// overlay lets repositories tune filtering and rubric settings without
// editing the workflow; an explicit environment variable always wins over
// the file.
package config
