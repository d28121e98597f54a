// Package cli defines the Cobra command tree for the agentpack CLI. Each file
// defines one top-level command; root.go assembles the tree. Commands resolve
// paths and settings, then delegate to internal packages; they only handle
// flags, output formatting, and user interaction.
package cli
