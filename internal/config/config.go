package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/agentx-labs/agentpack/internal/branding"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeySource    = "source"
	KeyHostRoot  = "host_root"
	KeyLogLevel  = "log_level"
	KeyAssumeYes = "assume_yes"
)

// Keys lists every key accepted by Set.
var Keys = []string{KeySource, KeyHostRoot, KeyLogLevel, KeyAssumeYes}

var v = newViper()

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetConfigType(fileType)
	nv.SetEnvPrefix(branding.EnvPrefix())
	nv.AutomaticEnv()
	nv.SetDefault(KeyLogLevel, "warn")
	nv.SetDefault(KeyAssumeYes, false)
	return nv
}

// Dir returns the path to the config directory (~/.agentpack/).
// AGENTPACK_CONFIG_DIR overrides the location.
func Dir() string {
	if d := os.Getenv(branding.EnvVar("CONFIG_DIR")); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.agentpack/config.yaml).
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

// Load resets the settings and reads them from the config file and
// environment. A missing config file is not an error.
func Load() error {
	v = newViper()
	v.SetConfigFile(FilePath())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		// Drop anything read before the failure.
		v = newViper()
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// BindFlag lets a command-line flag override the given key when the flag was
// set explicitly.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %q: flag not defined", key)
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("binding %q: %w", key, err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return v.GetBool(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyAssumeYes {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		v.Set(key, b)
	} else {
		v.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
