// Package paths resolves configuration directory and corpus locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative default for the corpus root.
const DefaultRootDirName = "controls"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CTLFILES_CONFIG_DIR"
	EnvRootDir   = "CTLFILES_ROOT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/ctlfiles (fallback ~/.config/ctlfiles)
// macOS:   ~/Library/Application Support/ctlfiles
// Windows: %APPDATA%/ctlfiles
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ctlfiles"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "ctlfiles"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "ctlfiles"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CTLFILES_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveRootDir returns the corpus root following the precedence chain:
// flag > config.yaml root_dir > CTLFILES_ROOT_DIR env > $(CWD)/controls.
func ResolveRootDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvRootDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultRootDirName), nil
}

// ResolveTemplatePath returns the template document path: flag >
// config.yaml template_path > <root>/template.json.
func ResolveTemplatePath(flag, configYAMLValue, rootDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	return filepath.Join(rootDir, "template.json"), nil
}
