// Package doctor reports, without changing anything, whether an install
// would succeed: the payload source, the host directory or project markers,
// the current state of the destination, and the config file.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/agentpack/internal/branding"
	"github.com/agentx-labs/agentpack/internal/config"
	"github.com/agentx-labs/agentpack/internal/payload"
	"github.com/agentx-labs/agentpack/internal/target"
	"github.com/spf13/afero"
)

// ErrProblems is returned when a check the installer depends on fails.
var ErrProblems = errors.New("doctor found problems")

// Options selects what to check.
type Options struct {
	Fs         afero.Fs
	SourceRoot string
	Target     *target.Target
	// ConfigPath is validated when non-empty.
	ConfigPath string
}

// Run writes the report to w.
func Run(w io.Writer, opts Options) error {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	problems := 0
	problems += checkSource(w, fs, opts.SourceRoot)
	fmt.Fprintln(w)
	problems += checkTarget(w, fs, opts.Target)
	if opts.ConfigPath != "" {
		fmt.Fprintln(w)
		checkConfig(w, opts.ConfigPath)
	}

	if problems > 0 {
		return fmt.Errorf("%w: %d", ErrProblems, problems)
	}
	return nil
}

func checkSource(w io.Writer, fs afero.Fs, root string) int {
	fmt.Fprintf(w, "Source check (%s):\n", root)

	src, err := payload.Discover(fs, root)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %v\n", err)
		return 1
	}
	for _, c := range []*payload.Collection{src.Agents, src.Workflows} {
		fmt.Fprintf(w, "  [ OK ] %s (%d files, %d counted)\n", c.Source, len(c.Files), c.Count())
		if len(c.Files) == 0 {
			fmt.Fprintf(w, "  [WARN] %s is empty\n", c.Source)
		}
	}
	if src.Rules != nil {
		fmt.Fprintf(w, "  [ OK ] %s\n", src.Rules.Source)
	} else {
		fmt.Fprintf(w, "  [ -- ] no %s or %s (optional)\n",
			payload.RulesFile, filepath.Join(payload.RulesSubdir, payload.RulesFile))
	}
	return 0
}

func checkTarget(w io.Writer, fs afero.Fs, tgt *target.Target) int {
	fmt.Fprintf(w, "Target check (%s):\n", tgt.Mode)
	problems := 0

	switch tgt.Mode {
	case target.ModeGlobal:
		if err := tgt.CheckHost(fs); err != nil {
			fmt.Fprintf(w, "  [MISS] %v\n", err)
			problems++
		} else {
			fmt.Fprintf(w, "  [ OK ] %s exists\n", tgt.HostRoot)
		}
	case target.ModeProject:
		if markers := target.DetectProjectMarkers(fs, tgt.ProjectDir()); len(markers) > 0 {
			fmt.Fprintf(w, "  [ OK ] project markers: %v\n", markers)
		} else {
			fmt.Fprintf(w, "  [WARN] %s has no %s\n", tgt.ProjectDir(), strings.Join(branding.ProjectMarkers(), " or "))
		}
	}

	for _, kind := range []payload.Kind{payload.KindAgents, payload.KindWorkflows} {
		problems += checkDestDir(w, fs, tgt.Dir(kind))
	}
	if ok, _ := afero.Exists(fs, tgt.RulesPath); ok {
		fmt.Fprintf(w, "  [ OK ] %s installed\n", tgt.RulesPath)
	} else {
		fmt.Fprintf(w, "  [ -- ] %s not installed\n", tgt.RulesPath)
	}

	if has, err := tgt.HasContent(fs); err == nil && has {
		fmt.Fprintln(w, "         Existing content: install will ask before overwriting.")
	}
	return problems
}

func checkDestDir(w io.Writer, fs afero.Fs, dir string) int {
	info, err := fs.Stat(dir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(w, "  [ -- ] %s not created yet\n", dir)
		return 0
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", dir, err)
		return 1
	case !info.IsDir():
		fmt.Fprintf(w, "  [FAIL] %s is not a directory\n", dir)
		return 1
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", dir, err)
		return 1
	}
	files := 0
	for _, e := range entries {
		if !e.IsDir() {
			files++
		}
	}
	fmt.Fprintf(w, "  [ OK ] %s (%d files)\n", dir, files)
	return 0
}

// checkConfig reports schema problems as warnings; an invalid config never
// blocks an install that passes explicit flags.
func checkConfig(w io.Writer, path string) {
	fmt.Fprintln(w, "Config check:")
	result, err := config.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %s: %v\n", path, err)
		return
	}
	if result.Valid {
		fmt.Fprintf(w, "  [ OK ] %s\n", path)
		return
	}
	fmt.Fprintf(w, "  [WARN] %s has %d issue(s)\n", path, len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "         %s\n", issue)
	}
}
