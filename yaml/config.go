// Package yaml loads and saves configuration files.
package yaml

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/chatextract"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file location,
// ~/.config/chatextract/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", chatextract.Errorf(chatextract.EINTERNAL, "failed to resolve home directory: %v", err)
	}
	return filepath.Join(home, ".config", "chatextract", "config.yaml"), nil
}

// Load reads configuration from path. When the file does not exist, it
// writes the defaults there and returns them.
func Load(path string) (chatextract.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := chatextract.DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return chatextract.Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return chatextract.Config{}, chatextract.Errorf(chatextract.EINTERNAL, "failed to read config: %v", err)
	}

	cfg := chatextract.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return chatextract.Config{}, chatextract.Errorf(chatextract.EINVALID, "failed to parse config: %v", err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg chatextract.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return chatextract.Errorf(chatextract.EINTERNAL, "failed to encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return chatextract.Errorf(chatextract.EINTERNAL, "failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return chatextract.Errorf(chatextract.EINTERNAL, "failed to write config: %v", err)
	}
	return nil
}
