// Package installer copies a payload source tree into an installation target.
//
// A run is strictly linear: validate the source and target, ask for consent
// if the target already holds agents or workflows, copy agents, copy
// workflows, copy the rules file if there is one, and summarize. Copies
// overwrite same-named files and never delete anything, so re-running with
// the same source is safe and yields the same result. There is no rollback:
// a failed copy leaves earlier copies in place.
package installer
