//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	SourceDir  string // payload root with agents/, workflows/ and rules.md
	ProjectDir string // a mock project directory
	HostRoot   string // stands in for ~/.gemini; not created by setupTestEnv
	ConfigDir  string // AGENTPACK_CONFIG_DIR
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so every operation is sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		SourceDir:  t.TempDir(),
		ProjectDir: t.TempDir(),
		HostRoot:   filepath.Join(t.TempDir(), ".gemini"),
		ConfigDir:  t.TempDir(),
	}

	t.Setenv("AGENTPACK_CONFIG_DIR", env.ConfigDir)
	t.Setenv("AGENTPACK_HOST_ROOT", env.HostRoot)

	return env
}

// setupPayload writes a payload with two agents, a README, one workflow and
// a top-level rules file into env.SourceDir.
func setupPayload(t *testing.T, env *testEnv) {
	t.Helper()

	writeFile(t, filepath.Join(env.SourceDir, "agents", "architect.md"), "# Architect\n")
	writeFile(t, filepath.Join(env.SourceDir, "agents", "reviewer.md"), "# Reviewer\n")
	writeFile(t, filepath.Join(env.SourceDir, "agents", "README.md"), "index\n")
	writeFile(t, filepath.Join(env.SourceDir, "workflows", "release.md"), "# Release\n")
	writeFile(t, filepath.Join(env.SourceDir, "rules.md"), "Always write tests.\n")
}

// createHost creates the assistant's per-user directory so global installs
// pass the host check.
func createHost(t *testing.T, env *testEnv) {
	t.Helper()
	if err := os.MkdirAll(env.HostRoot, 0755); err != nil {
		t.Fatalf("creating host root: %v", err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// listTree returns every regular file under root, relative to root.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, rel)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("walking %s: %v", root, err)
	}
	return files
}
