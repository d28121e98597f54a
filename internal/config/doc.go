// Package config manages user-level settings stored at ~/.agentpack/config.yaml.
// Values resolve with the usual precedence: bound command-line flags, then
// AGENTPACK_* environment variables, then the config file, then defaults.
// The file itself can be validated against an embedded JSON schema.
package config
