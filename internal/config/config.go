package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	configDirName  = ".config/ghrev"
	configFileName = "config.yml"
)

// Config contains the cli dependencies and the effective review settings.
type Config struct {
	Version string
	Store   *Store

	ConfigDirPath  string
	ConfigFilePath string

	Debug    bool
	Provider string
	Model    string

	GitHubToken   string
	GitHubBaseURL string

	// io writers useful for testing
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewDefaultConfig creates a config with defaults, then layers the YAML file
// (~/.config/ghrev/config.yml) and well-known environment variables on top.
func NewDefaultConfig() Config {
	conf := Config{
		ConfigDirPath:  configDirName,
		ConfigFilePath: configFileName,
		Provider:       "openai",
		InReader:       os.Stdin,
		OutWriter:      os.Stdout,
		ErrWriter:      os.Stderr,
	}

	conf.Store = setupStore(conf)

	if p := conf.Store.GetString("provider"); p != "" {
		conf.Provider = p
	}
	if p := os.Getenv("GHREV_PROVIDER"); p != "" {
		conf.Provider = p
	}
	conf.Model = conf.Store.GetString("model")

	conf.GitHubToken = conf.Store.GetString("github.token")
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		conf.GitHubToken = t
	}
	conf.GitHubBaseURL = conf.Store.GetString("github.base_url")

	return conf
}

func setupStore(conf Config) *Store {
	s := NewStore()

	dir, err := GetConfigDirPath(conf)
	if err != nil {
		return s
	}

	cfgFile := filepath.Join(dir, conf.ConfigFilePath)
	if err := s.LoadYAMLFile(cfgFile); err != nil {
		// Config file not found is OK, we use defaults
		return s
	}

	return s
}

// GetConfigFilePath returns the config file path for ghrev.
func GetConfigFilePath(conf Config) (string, error) {
	dir, err := GetConfigDirPath(conf)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, conf.ConfigFilePath), nil
}

// GetConfigDirPath returns the path of the ghrev config folder.
func GetConfigDirPath(conf Config) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to read home directory: %s", err)
	}
	return filepath.Join(home, conf.ConfigDirPath), nil
}
