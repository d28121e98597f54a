// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this directory before building; Go's
// //go:embed bakes it into the binary. Besides the CLI's own identity it
// carries the directory names of the host assistant the payload is
// installed for.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName            string   `yaml:"cli_name"`
	DisplayName        string   `yaml:"display_name"`
	Description        string   `yaml:"description"`
	HomeDir            string   `yaml:"home_dir"`
	EnvPrefix          string   `yaml:"env_prefix"`
	GoModule           string   `yaml:"go_module"`
	HostDir            string   `yaml:"host_dir"`
	HostNamespace      string   `yaml:"host_namespace"`
	GlobalAgentsDir    string   `yaml:"global_agents_dir"`
	GlobalWorkflowsDir string   `yaml:"global_workflows_dir"`
	GlobalRulesFile    string   `yaml:"global_rules_file"`
	ProjectDir         string   `yaml:"project_dir"`
	ProjectRulesFile   string   `yaml:"project_rules_file"`
	ProjectMarkers     []string `yaml:"project_markers"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:            "agentpack",
			DisplayName:        "AgentPack",
			Description:        "Installs agent personas, workflows and rules for an AI coding assistant",
			HomeDir:            ".agentpack",
			EnvPrefix:          "AGENTPACK",
			GoModule:           "github.com/agentx-labs/agentpack",
			HostDir:            ".gemini",
			HostNamespace:      "antigravity",
			GlobalAgentsDir:    "global_agents",
			GlobalWorkflowsDir: "global_workflows",
			GlobalRulesFile:    "GEMINI.md",
			ProjectDir:         ".agent",
			ProjectRulesFile:   "rules.md",
			ProjectMarkers:     []string{"pubspec.yaml", "package.json"},
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "agentpack").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "AgentPack").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME holding the CLI's own
// config (e.g., ".agentpack").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "AGENTPACK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// HostDir returns the host assistant's dot-directory under $HOME (e.g., ".gemini").
// The global installer requires it to exist and never creates it.
func HostDir() string { load(); return defaults.HostDir }

// HostNamespace returns the product directory beneath the host dir that the
// global collections live in (e.g., "antigravity").
func HostNamespace() string { load(); return defaults.HostNamespace }

// GlobalAgentsDir returns the global agents directory name.
func GlobalAgentsDir() string { load(); return defaults.GlobalAgentsDir }

// GlobalWorkflowsDir returns the global workflows directory name.
func GlobalWorkflowsDir() string { load(); return defaults.GlobalWorkflowsDir }

// GlobalRulesFile returns the file name the rules file is renamed to when
// installed globally. It sits directly in the host dir.
func GlobalRulesFile() string { load(); return defaults.GlobalRulesFile }

// ProjectDir returns the per-project directory name (e.g., ".agent").
func ProjectDir() string { load(); return defaults.ProjectDir }

// ProjectRulesFile returns the rules file name inside <project>/.agent/rules/.
func ProjectRulesFile() string { load(); return defaults.ProjectRulesFile }

// ProjectMarkers returns the file names whose presence marks a directory as a
// project root (Flutter and Node by default).
func ProjectMarkers() []string {
	load()
	out := make([]string, len(defaults.ProjectMarkers))
	copy(out, defaults.ProjectMarkers)
	return out
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("source") → "AGENTPACK_SOURCE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
