package target

import "fmt"

// Mode selects the installation destination.
type Mode int

const (
	// ModeGlobal installs into the host assistant's per-user directory.
	ModeGlobal Mode = iota
	// ModeProject installs into .agent/ under a project directory.
	ModeProject
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeGlobal:
		return "global"
	case ModeProject:
		return "project"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "global":
		return ModeGlobal, nil
	case "project":
		return ModeProject, nil
	default:
		return 0, fmt.Errorf("unknown install mode %q (want global or project)", s)
	}
}
