package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPrefix is the leading component of the config file naming
// convention, <Prefix>.<Name>.json.
const DefaultPrefix = "AzToolkit"

// Locate resolves the path of the config file to load.
//
// An explicit path always wins and is returned unchanged, without checking
// that the file exists. Otherwise, when a config name is given, the path is
// built from the convention <dir>/<prefix>.<name>.json and must exist.
// With neither an explicit path nor a name, config is optional and Locate
// returns an empty path with no error.
func Locate(explicitPath, name, dir, prefix string) (string, error) {
	if explicitPath != "" {
		return explicitPath, nil
	}

	if name == "" {
		return "", nil
	}

	if prefix == "" {
		prefix = DefaultPrefix
	}
	if dir == "" {
		dir = defaultDir()
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s.json", prefix, name))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config not found: %s", path)
	}
	return path, nil
}

// defaultDir is the directory holding the running binary, matching the
// original convention of looking next to the script. Falls back to the
// working directory when the executable path cannot be determined.
func defaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
