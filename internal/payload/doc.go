// Package payload discovers the installable collections in a source tree:
// the agents/ and workflows/ directories and the optional rules file. Files
// are treated as opaque; only their names and locations matter here.
package payload
