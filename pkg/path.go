package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Environment variables that relocate the per-user directories.
const (
	EnvConfigDir = "DOJI_CONFIG_DIR"
	EnvCacheDir  = "DOJI_CACHE_DIR"
)

// executableRules rewrite the executable base name into a [Prefix].
//
//nolint:gochecknoglobals
var executableRules = []struct {
	match   *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`^__debug_bin\d+$`), Name}, // dlv output
}

// Prefix is the name of the running executable without its extension. It
// names the per-user configuration and cache directories, so a renamed
// binary keeps its own settings. Debugger builds map to [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	return prefixOf(executable())
})

func executable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return os.Args[0]
}

func prefixOf(path string) string {
	// Leading dots go first so a hidden name is not mistaken for an extension.
	base := strings.TrimLeft(filepath.Base(path), ".")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, rule := range executableRules {
		base = rule.match.ReplaceAllString(base, rule.replace)
	}

	return base
}

// ConfigDir is the directory holding configuration files: $DOJI_CONFIG_DIR
// if set, else [Prefix] under the user configuration directory.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(EnvConfigDir, os.UserConfigDir, ".config")
})

// CacheDir is the directory holding transient files such as REPL history
// and profiles: $DOJI_CACHE_DIR if set, else [Prefix] under the user cache
// directory.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(EnvCacheDir, os.UserCacheDir, ".cache")
})

// userDir resolves a per-user directory. When base fails, hidden is used
// under the home directory, and the working directory after that.
func userDir(env string, base func() (string, error), hidden string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}

	dir, err := base()
	if err != nil {
		dir = hidden

		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, hidden)
		} else if wd, err := os.Getwd(); err == nil {
			dir = filepath.Join(wd, hidden)
		}
	}

	return filepath.Join(dir, Prefix())
}
