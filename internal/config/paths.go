package config

import (
	"os"
	"path/filepath"
)

// ConfigNames are the file names searched for, in order, when no --config
// flag is given.
var ConfigNames = []string{"goldsim.json", "goldsim.yaml", "goldsim.yml", "goldsim.toml"}

// DetectConfigFile walks up from the current working directory looking for
// one of ConfigNames and falls back to the user config directory
// (~/.config/goldsim). It returns "" when nothing is found; goldsim then
// runs on defaults.
func DetectConfigFile() string {
	dir, err := os.Getwd()
	if err == nil {
		for {
			for _, name := range ConfigNames {
				candidate := filepath.Join(dir, name)
				if _, err := os.Stat(candidate); err == nil {
					return candidate
				}
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if home, err := os.UserConfigDir(); err == nil {
		for _, name := range ConfigNames {
			candidate := filepath.Join(home, "goldsim", name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

// ResolvePath makes p absolute relative to the directory holding
// configFile. Empty and absolute paths are returned unchanged, as is p when
// there is no config file.
func ResolvePath(configFile, p string) string {
	if p == "" || filepath.IsAbs(p) || configFile == "" {
		return p
	}
	return filepath.Join(filepath.Dir(configFile), p)
}
