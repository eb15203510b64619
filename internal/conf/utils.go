package conf

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetDefaultConfigPaths returns the directories searched for config.yaml,
// in priority order.
func GetDefaultConfigPaths() []string {
	paths := []string{"."}

	if homeDir, err := os.UserHomeDir(); err == nil {
		if runtime.GOOS == "windows" {
			paths = append(paths, filepath.Join(homeDir, "AppData", "Roaming", "authorid"))
		} else {
			paths = append(paths, filepath.Join(homeDir, ".config", "authorid"))
		}
	}

	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/authorid")
	}

	return paths
}
