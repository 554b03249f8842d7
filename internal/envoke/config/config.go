// Package config resolves the two paths envoke operates on: the profile
// directory and the active env file. Both are relative to the invocation
// directory by default and overridable through ENVOKE_* environment variables
// or an optional .envoke.yaml in the working directory.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultDir is the default profile directory.
	DefaultDir = ".envoke"

	// DefaultEnvFile is the default active link path.
	DefaultEnvFile = ".env"

	configName = ".envoke"
	configType = "yaml"

	keyDir     = "dir"
	keyEnvFile = "env_file"

	envPrefix = "ENVOKE"
)

// Config holds the resolved paths. It is plain data; consumers never see viper.
type Config struct {
	// Dir is the profile directory. Its existence is the initialization signal.
	Dir string

	// EnvFile is the active link path at the workspace root.
	EnvFile string
}

// Default returns the standard configuration without consulting the
// environment or any config file.
func Default() Config {
	return Config{Dir: DefaultDir, EnvFile: DefaultEnvFile}
}

// Load resolves the configuration from defaults, an optional .envoke.yaml in
// the working directory, and ENVOKE_DIR / ENVOKE_ENV_FILE environment
// variables. A missing config file is not an error; a malformed one is.
func Load(fs afero.Fs) (Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetDefault(keyDir, DefaultDir)
	v.SetDefault(keyEnvFile, DefaultEnvFile)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		Dir:     v.GetString(keyDir),
		EnvFile: v.GetString(keyEnvFile),
	}, nil
}
