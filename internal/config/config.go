// Package config wraps Viper to provide file- and environment-backed
// configuration from ~/.elemdex/config.yaml. Recognized keys include
// cache_ttl (seconds), manifest_dir, and scopes.global/project/local
// root overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/elemdex-labs/elemdex/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultCacheTTL    = 60 * time.Second
	DefaultManifestDir = ".manifest"
)

// Dir returns the path to the Elemdex config directory (~/.elemdex/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.elemdex/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault("cache_ttl", int(DefaultCacheTTL/time.Second))
	viper.SetDefault("manifest_dir", DefaultManifestDir)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// CacheTTL returns the catalog cache lifetime.
func CacheTTL() time.Duration {
	secs := viper.GetInt("cache_ttl")
	if secs <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(secs) * time.Second
}

// ManifestDir returns the directory name that holds per-type manifests
// under each scope root.
func ManifestDir() string {
	if v := viper.GetString("manifest_dir"); v != "" {
		return v
	}
	return DefaultManifestDir
}

// Set stores a key-value pair and persists the config file, creating
// the config directory on first use.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)
	if err := viper.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
