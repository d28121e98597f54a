package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// DefaultFileMode is applied to copies whose source reported no permission bits.
const DefaultFileMode os.FileMode = 0644

// FileMode returns the permission bits of mode, or DefaultFileMode when it
// carries none.
func FileMode(mode os.FileMode) os.FileMode {
	if perm := mode.Perm(); perm != 0 {
		return perm
	}
	return DefaultFileMode
}

// Chmod sets the permission bits of path on fs. On a Windows OS filesystem
// this is a no-op because Windows does not support Unix-style permission bits.
func Chmod(fs afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		if _, ok := fs.(*afero.OsFs); ok {
			return nil
		}
	}
	return fs.Chmod(path, FileMode(mode))
}
