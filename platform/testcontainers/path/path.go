package path

import (
	"os"
	"path/filepath"
)

// ProjectRoot walks up from the working directory to the directory holding go.mod.
func ProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		panic("cannot get working directory: " + err.Error())
	}

	for {
		if _, err = os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			panic("cannot find project root (go.mod)")
		}

		dir = parent
	}
}
