package target

import (
	"testing"

	"github.com/agentx-labs/agentpack/internal/payload"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalLayout(t *testing.T) {
	tgt := Global("/home/me/.gemini")

	assert.Equal(t, ModeGlobal, tgt.Mode)
	assert.Equal(t, "/home/me/.gemini/antigravity", tgt.Root)
	assert.Equal(t, "/home/me/.gemini/antigravity/global_agents", tgt.AgentsDir)
	assert.Equal(t, "/home/me/.gemini/antigravity/global_workflows", tgt.WorkflowsDir)
	assert.Equal(t, "/home/me/.gemini/GEMINI.md", tgt.RulesPath)
	assert.Equal(t, "/home/me/.gemini", tgt.Dir(payload.KindRules))
}

func TestProjectLayout(t *testing.T) {
	tgt := Project("/work/app")

	assert.Equal(t, ModeProject, tgt.Mode)
	assert.Equal(t, "/work/app/.agent", tgt.Root)
	assert.Equal(t, "/work/app/.agent/agents", tgt.Dir(payload.KindAgents))
	assert.Equal(t, "/work/app/.agent/workflows", tgt.Dir(payload.KindWorkflows))
	assert.Equal(t, "/work/app/.agent/rules/rules.md", tgt.RulesPath)
	assert.Equal(t, "/work/app", tgt.ProjectDir())
	assert.Empty(t, tgt.HostRoot)
}

func TestCheckHost(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := Global("/home/me/.gemini").CheckHost(fs)
	assert.ErrorIs(t, err, ErrHostEnvironmentNotFound)

	require.NoError(t, fs.MkdirAll("/home/me/.gemini", 0755))
	assert.NoError(t, Global("/home/me/.gemini").CheckHost(fs))

	// Projects never depend on the host directory.
	assert.NoError(t, Project("/nowhere").CheckHost(fs))
}

func TestCheckHost_NotADirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/me/.gemini", []byte("x"), 0644))

	assert.ErrorIs(t, Global("/home/me/.gemini").CheckHost(fs), ErrHostEnvironmentNotFound)
}

func TestHasContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	tgt := Project("/p")

	has, err := tgt.HasContent(fs)
	require.NoError(t, err)
	assert.False(t, has, "missing directories are empty")

	require.NoError(t, fs.MkdirAll(tgt.AgentsDir, 0755))
	require.NoError(t, fs.MkdirAll(tgt.WorkflowsDir+"/sub", 0755))
	has, err = tgt.HasContent(fs)
	require.NoError(t, err)
	assert.False(t, has, "empty directories and subdirectories are not content")

	require.NoError(t, afero.WriteFile(fs, tgt.WorkflowsDir+"/w.md", []byte("w"), 0644))
	files, err := tgt.ExistingFiles(fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"/p/.agent/workflows/w.md"}, files)
}

func TestHasContent_IgnoresRulesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	tgt := Project("/p")
	require.NoError(t, fs.MkdirAll("/p/.agent/rules", 0755))
	require.NoError(t, afero.WriteFile(fs, tgt.RulesPath, []byte("r"), 0644))

	has, err := tgt.HasContent(fs)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestInventory(t *testing.T) {
	fs := afero.NewMemMapFs()
	tgt := Global("/h")
	require.NoError(t, fs.MkdirAll(tgt.AgentsDir, 0755))
	require.NoError(t, afero.WriteFile(fs, tgt.AgentsDir+"/a.md", []byte("abc"), 0644))
	require.NoError(t, afero.WriteFile(fs, tgt.RulesPath, []byte("rules"), 0644))

	entries, err := tgt.Inventory(fs)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Kind: payload.KindAgents, Name: "a.md", Path: "/h/antigravity/global_agents/a.md", Size: 3}, entries[0])
	assert.Equal(t, payload.KindRules, entries[1].Kind)
	assert.Equal(t, "GEMINI.md", entries[1].Name)
}

func TestDetectProjectMarkers(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.Empty(t, DetectProjectMarkers(fs, "/p"))

	require.NoError(t, afero.WriteFile(fs, "/p/package.json", []byte("{}"), 0644))
	assert.Equal(t, []string{"package.json"}, DetectProjectMarkers(fs, "/p"))
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeGlobal, ModeProject} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("system")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Mode(9).String())
}
