// ABOUTME: Standard filesystem paths for pichat configuration and data
// ABOUTME: Resolves ~/.pichat/ with a PICHAT_DIR environment override

package config

import (
	"os"
	"path/filepath"
)

const globalDirName = ".pichat"

// GlobalDir returns the user-global config directory (~/.pichat/).
// The PICHAT_DIR environment variable overrides it.
func GlobalDir() string {
	if dir := os.Getenv("PICHAT_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.json")
}

var sessionsDirOverride string

// SetSessionsDir redirects session log storage for this process, typically
// from the --sessions-dir flag. An empty dir restores the default.
func SetSessionsDir(dir string) {
	sessionsDirOverride = dir
}

// SessionsDir returns the session log storage directory.
func SessionsDir() string {
	if sessionsDirOverride != "" {
		return sessionsDirOverride
	}
	return filepath.Join(GlobalDir(), "sessions")
}

// PersonasDir returns the directory holding persona profile files.
func PersonasDir() string {
	return filepath.Join(GlobalDir(), "personas")
}

// TranscriptsDir returns the directory for exported conversation
// transcripts.
func TranscriptsDir() string {
	return filepath.Join(GlobalDir(), "transcripts")
}

// EnsureDir creates dir (and parents) if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o700)
}
