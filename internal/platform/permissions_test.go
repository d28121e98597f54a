package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func TestFileMode(t *testing.T) {
	tests := []struct {
		in, want os.FileMode
	}{
		{0, DefaultFileMode},
		{0755, 0755},
		{0600, 0600},
		{os.ModeSymlink | 0777, 0777},
	}
	for _, tt := range tests {
		if got := FileMode(tt.in); got != tt.want {
			t.Errorf("FileMode(%o) = %o, want %o", tt.in, got, tt.want)
		}
	}
}

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(afero.NewOsFs(), path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestChmodMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/x/run.sh", []byte("#!/bin/sh"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(fs, "/x/run.sh", 0755); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	info, err := fs.Stat("/x/run.sh")
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0755 {
		t.Errorf("permissions = %o, want %o", perm, 0755)
	}
}

func TestChmodMissingFile(t *testing.T) {
	if err := Chmod(afero.NewMemMapFs(), "/missing", 0644); err == nil {
		t.Error("expected error for missing file")
	}
}
