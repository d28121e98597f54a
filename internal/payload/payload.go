package payload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Kind tags a collection by purpose.
type Kind string

const (
	KindAgents    Kind = "agents"
	KindWorkflows Kind = "workflows"
	KindRules     Kind = "rules"
)

// Kinds lists every kind in install order.
var Kinds = []Kind{KindAgents, KindWorkflows, KindRules}

// Source-tree names.
const (
	AgentsDir    = "agents"
	WorkflowsDir = "workflows"
	RulesFile    = "rules.md"
	RulesSubdir  = "rules"
	ReadmeFile   = "README.md"
)

// ErrMissingSourceCollection is returned when agents/ or workflows/ is absent
// from the source root.
var ErrMissingSourceCollection = errors.New("missing source collection")

// uncountedNames are copied but excluded from the installed-count metric.
var uncountedNames = map[string]bool{
	ReadmeFile: true,
}

// IsCounted reports whether a file with this name counts toward the summary.
func IsCounted(name string) bool {
	return !uncountedNames[name]
}

// File is one payload file.
type File struct {
	Name string // base name
	Path string // absolute or root-relative source path
	Mode os.FileMode
}

// Collection is a set of payload files sharing one purpose.
type Collection struct {
	Kind Kind
	// Source is the collection directory, or the file itself for rules.
	Source string
	Files  []File
}

// Count returns the number of files that count toward the summary.
func (c *Collection) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, f := range c.Files {
		if IsCounted(f.Name) {
			n++
		}
	}
	return n
}

// Source is a discovered payload tree.
type Source struct {
	Root      string
	Agents    *Collection
	Workflows *Collection
	Rules     *Collection // nil when no rules file exists
}

// Collections returns the non-nil collections in install order.
func (s *Source) Collections() []*Collection {
	out := []*Collection{s.Agents, s.Workflows}
	if s.Rules != nil {
		out = append(out, s.Rules)
	}
	return out
}

// Discover scans root for the agents and workflows collections and the
// optional rules file. It only reads.
func Discover(fs afero.Fs, root string) (*Source, error) {
	agents, err := scanDir(fs, KindAgents, filepath.Join(root, AgentsDir))
	if err != nil {
		return nil, err
	}
	workflows, err := scanDir(fs, KindWorkflows, filepath.Join(root, WorkflowsDir))
	if err != nil {
		return nil, err
	}
	rules, err := findRules(fs, root)
	if err != nil {
		return nil, err
	}

	return &Source{
		Root:      root,
		Agents:    agents,
		Workflows: workflows,
		Rules:     rules,
	}, nil
}

// CheckRoot verifies that root holds both required collection directories.
func CheckRoot(fs afero.Fs, root string) error {
	for _, name := range []string{AgentsDir, WorkflowsDir} {
		if err := requireDir(fs, filepath.Join(root, name), name); err != nil {
			return err
		}
	}
	return nil
}

func requireDir(fs afero.Fs, dir, name string) error {
	info, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/ not found at %s", ErrMissingSourceCollection, name, dir)
		}
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingSourceCollection, dir)
	}
	return nil
}

// scanDir lists the regular files directly under dir. Subdirectories are
// skipped; symlinks are followed.
func scanDir(fs afero.Fs, kind Kind, dir string) (*Collection, error) {
	if err := requireDir(fs, dir, string(kind)); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	c := &Collection{Kind: kind, Source: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info := entry
		if !entry.Mode().IsRegular() {
			// Follow symlinks; skip anything that is not a file behind them.
			info, err = fs.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		c.Files = append(c.Files, File{
			Name: entry.Name(),
			Path: path,
			Mode: info.Mode().Perm(),
		})
	}

	sort.Slice(c.Files, func(i, j int) bool { return c.Files[i].Name < c.Files[j].Name })
	return c, nil
}

// findRules looks for rules.md at the root, then rules/rules.md.
func findRules(fs afero.Fs, root string) (*Collection, error) {
	candidates := []string{
		filepath.Join(root, RulesFile),
		filepath.Join(root, RulesSubdir, RulesFile),
	}
	for _, path := range candidates {
		info, err := fs.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		return &Collection{
			Kind:   KindRules,
			Source: path,
			Files:  []File{{Name: RulesFile, Path: path, Mode: info.Mode().Perm()}},
		}, nil
	}
	return nil, nil
}
