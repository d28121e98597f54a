package target

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentx-labs/agentpack/internal/branding"
	"github.com/agentx-labs/agentpack/internal/payload"
	"github.com/spf13/afero"
)

// ErrHostEnvironmentNotFound is returned in global mode when the host
// assistant's directory does not exist.
var ErrHostEnvironmentNotFound = errors.New("host environment not found")

// Target is a resolved installation destination.
type Target struct {
	Mode Mode
	// Root holds the agents and workflows directories.
	Root         string
	AgentsDir    string
	WorkflowsDir string
	RulesPath    string
	// HostRoot must pre-exist for global installs. Empty for projects.
	HostRoot string
}

// Global returns the target under hostRoot (e.g. ~/.gemini):
//
//	<hostRoot>/antigravity/global_agents/
//	<hostRoot>/antigravity/global_workflows/
//	<hostRoot>/GEMINI.md
func Global(hostRoot string) *Target {
	root := filepath.Join(hostRoot, branding.HostNamespace())
	return &Target{
		Mode:         ModeGlobal,
		Root:         root,
		AgentsDir:    filepath.Join(root, branding.GlobalAgentsDir()),
		WorkflowsDir: filepath.Join(root, branding.GlobalWorkflowsDir()),
		RulesPath:    filepath.Join(hostRoot, branding.GlobalRulesFile()),
		HostRoot:     hostRoot,
	}
}

// Project returns the target inside projectDir:
//
//	<projectDir>/.agent/agents/
//	<projectDir>/.agent/workflows/
//	<projectDir>/.agent/rules/rules.md
func Project(projectDir string) *Target {
	root := filepath.Join(projectDir, branding.ProjectDir())
	return &Target{
		Mode:         ModeProject,
		Root:         root,
		AgentsDir:    filepath.Join(root, payload.AgentsDir),
		WorkflowsDir: filepath.Join(root, payload.WorkflowsDir),
		RulesPath:    filepath.Join(root, payload.RulesSubdir, branding.ProjectRulesFile()),
	}
}

// ProjectDir returns the directory the project target was built for.
func (t *Target) ProjectDir() string {
	return filepath.Dir(t.Root)
}

// Dir returns the destination directory for a collection kind. For rules it
// is the directory holding the rules file.
func (t *Target) Dir(kind payload.Kind) string {
	switch kind {
	case payload.KindAgents:
		return t.AgentsDir
	case payload.KindWorkflows:
		return t.WorkflowsDir
	default:
		return filepath.Dir(t.RulesPath)
	}
}

// CheckHost verifies the host root exists for global targets. Project
// targets always pass.
func (t *Target) CheckHost(fs afero.Fs) error {
	if t.Mode != ModeGlobal {
		return nil
	}
	info, err := fs.Stat(t.HostRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist; install and run the assistant once before installing globally",
				ErrHostEnvironmentNotFound, t.HostRoot)
		}
		return fmt.Errorf("checking %s: %w", t.HostRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrHostEnvironmentNotFound, t.HostRoot)
	}
	return nil
}

// ExistingFiles returns the paths of files already present directly under the
// agents and workflows directories. Missing directories contribute nothing.
func (t *Target) ExistingFiles(fs afero.Fs) ([]string, error) {
	var out []string
	for _, dir := range []string{t.AgentsDir, t.WorkflowsDir} {
		names, err := listFiles(fs, dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out, nil
}

// HasContent reports whether either collection directory holds a file.
func (t *Target) HasContent(fs afero.Fs) (bool, error) {
	files, err := t.ExistingFiles(fs)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// Entry is one installed payload file.
type Entry struct {
	Kind payload.Kind `json:"kind"`
	Name string       `json:"name"`
	Path string       `json:"path"`
	Size int64        `json:"size"`
}

// Inventory lists the payload files currently installed at the target.
func (t *Target) Inventory(fs afero.Fs) ([]Entry, error) {
	var entries []Entry
	for _, kind := range []payload.Kind{payload.KindAgents, payload.KindWorkflows} {
		dir := t.Dir(kind)
		names, err := listFiles(fs, dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			path := filepath.Join(dir, name)
			info, err := fs.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			entries = append(entries, Entry{Kind: kind, Name: name, Path: path, Size: info.Size()})
		}
	}

	info, err := fs.Stat(t.RulesPath)
	switch {
	case err == nil && info.Mode().IsRegular():
		entries = append(entries, Entry{
			Kind: payload.KindRules,
			Name: filepath.Base(t.RulesPath),
			Path: t.RulesPath,
			Size: info.Size(),
		})
	case err != nil && !os.IsNotExist(err):
		return nil, fmt.Errorf("reading %s: %w", t.RulesPath, err)
	}
	return entries, nil
}

// DetectProjectMarkers returns the project marker files present in dir.
func DetectProjectMarkers(fs afero.Fs, dir string) []string {
	var found []string
	for _, marker := range branding.ProjectMarkers() {
		if ok, _ := afero.Exists(fs, filepath.Join(dir, marker)); ok {
			found = append(found, marker)
		}
	}
	return found
}

// listFiles returns the sorted names of non-directory entries in dir.
func listFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
