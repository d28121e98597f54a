// Package paths resolves the three locations an install needs: the host
// assistant's per-user directory, the payload source root, and the project
// directory. It is the only place that consults the home directory or the
// executable's location; everything downstream takes explicit paths.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/agentpack/internal/branding"
	"github.com/agentx-labs/agentpack/internal/payload"
	"github.com/spf13/afero"
)

// ShareDir is the payload location relative to the executable's parent in
// packaged releases (<prefix>/bin/agentpack, <prefix>/share/agentpack/).
const ShareDir = "share"

// HostRoot returns the host assistant's directory. A non-empty override
// (from AGENTPACK_HOST_ROOT or config) wins; otherwise ~/.gemini.
func HostRoot(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HostDir()), nil
}

// ProjectRoot returns dir, or the working directory when dir is empty.
func ProjectRoot(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// SourceCandidates lists where the payload is looked for when no explicit
// source is given, in order:
//  1. the executable's directory (payload shipped next to the binary)
//  2. <exe>/../share/agentpack (packaged release)
//  3. the working directory
func SourceCandidates() []string {
	var out []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		exeDir := filepath.Dir(exe)
		out = append(out, exeDir, filepath.Join(exeDir, "..", ShareDir, branding.CLIName()))
	}
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, cwd)
	}
	return out
}

// SourceRoot picks the payload root. An explicit path is returned as is so
// that a bad --source fails loudly. Otherwise the first candidate holding
// both collections wins; if none does, the first candidate is returned and
// the installer reports what is missing there.
func SourceRoot(fs afero.Fs, explicit string, candidates []string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no payload source found; pass --source or set %s", branding.EnvVar("SOURCE"))
	}
	for _, c := range candidates {
		if payload.CheckRoot(fs, c) == nil {
			return filepath.Clean(c), nil
		}
	}
	return filepath.Clean(candidates[0]), nil
}
