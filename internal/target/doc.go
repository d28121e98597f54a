// Package target resolves where a payload is installed. A global target lives
// under the host assistant's per-user directory, which must already exist; a
// project target lives in .agent/ under the project directory. The package
// also checks a target for pre-existing content, which decides whether the
// installer has to ask before overwriting.
package target
