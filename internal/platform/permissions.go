package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// Executable is the mode used for generated git hook scripts.
const Executable os.FileMode = 0o755

// Chmod sets file permissions on fsys. On Windows this is a no-op because
// Windows does not support Unix-style permission bits.
func Chmod(fsys afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fsys.Chmod(path, mode)
}
