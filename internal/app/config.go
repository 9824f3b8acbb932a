package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultSiteBaseURL = "https://www.wartimemaritime.org"
	defaultPageSize    = 50
)

type Config struct {
	SiteBaseURL string `yaml:"site_base_url"`
	APIBaseURL  string `yaml:"api_base_url"`
	StorageRoot string `yaml:"storage_root"`
	PageSize    int    `yaml:"page_size"`
	Theme       string `yaml:"theme"`
}

func DefaultConfig() Config {
	return Config{
		SiteBaseURL: defaultSiteBaseURL,
		APIBaseURL:  defaultSiteBaseURL + "/api",
		PageSize:    defaultPageSize,
		Theme:       "chronicle",
	}
}

// LoadConfig reads the YAML config at path, layering file values over
// defaults and WVA_* environment variables over both. A missing file is not
// an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := strings.TrimSpace(os.Getenv("WVA_SITE_BASE_URL")); v != "" {
		cfg.SiteBaseURL = v
		cfg.APIBaseURL = ""
	}
	if v := strings.TrimSpace(os.Getenv("WVA_API_BASE_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("WVA_STORAGE_ROOT")); v != "" {
		cfg.StorageRoot = v
	}

	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")
	if cfg.SiteBaseURL == "" {
		cfg.SiteBaseURL = defaultSiteBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = cfg.SiteBaseURL + "/api"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.StorageRoot == "" {
		cfg.StorageRoot = DefaultStorageRoot()
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "wva-seaskills", "config.yml")
}

// DefaultStorageRoot is where the session blob, the sqlite store, and the
// log file live. Prefers XDG data dir, falls back to ~/.local/share, then
// the system temp dir.
func DefaultStorageRoot() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "wva-seaskills")
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "wva-seaskills")
	}
	return filepath.Join(os.TempDir(), "wva-seaskills")
}
