// Package config resolves runtime settings for the assistant.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - a YAML file (strict: unknown keys are rejected)
//   - a .env file (missing file is ignored)
//   - process environment (ASSISTANT_* variables)
//
// Command-line flags are applied by the cli package on top of the result.
// The merged value is validated against an embedded CUE schema.
package config
