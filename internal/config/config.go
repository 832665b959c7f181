// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile is looked up in the working directory when no --config is given.
	DefaultConfigFile = "site.yaml"
	// EnvPrefix namespaces environment overrides, e.g. PORTFOLIO_PORT=8080.
	EnvPrefix = "PORTFOLIO"
)

// SiteConfig holds the configuration from the site.yaml file.
// The yaml tags are used by the scaffold when writing a fresh file, the
// mapstructure tags by viper when reading one.
type SiteConfig struct {
	Title           string   `yaml:"title" mapstructure:"title"`
	Author          string   `yaml:"author" mapstructure:"author"`
	BaseURL         string   `yaml:"baseurl" mapstructure:"baseurl"`
	Description     string   `yaml:"description" mapstructure:"description"`
	Keywords        []string `yaml:"keywords" mapstructure:"keywords"`
	ContentDir      string   `yaml:"contentDir" mapstructure:"contentDir"`
	PostExt         string   `yaml:"postExt" mapstructure:"postExt"`
	OutputDir       string   `yaml:"outputDir" mapstructure:"outputDir"`
	Port            int      `yaml:"port" mapstructure:"port"`
	Unsafe          bool     `yaml:"unsafe" mapstructure:"unsafe"`
	LegacyHTML      bool     `yaml:"legacyHTML" mapstructure:"legacyHTML"`
	AcceptedOrigins []string `yaml:"acceptedOrigins" mapstructure:"acceptedOrigins"`
	LogLevel        string   `yaml:"logLevel" mapstructure:"logLevel"`
}

// PostsDir is the directory holding one file per post, relative to the site root.
func (c SiteConfig) PostsDir() string {
	return filepath.ToSlash(filepath.Join(c.ContentDir, "posts"))
}

// PostsPath is the posts directory on disk for a site rooted at root. An
// absolute content directory is used as is.
func (c SiteConfig) PostsPath(root string) string {
	dir := filepath.Join(filepath.FromSlash(c.ContentDir), "posts")
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Ognjen Adzic")
	v.SetDefault("author", "ognjen")
	v.SetDefault("baseurl", "https://ognjen.dev")
	v.SetDefault("description", "Personal site and blog.")
	v.SetDefault("keywords", []string{"blog", "development", "entrepreneurship", "technology"})
	v.SetDefault("contentDir", "content")
	v.SetDefault("postExt", ".mdoc")
	v.SetDefault("outputDir", "public")
	v.SetDefault("port", 1313)
	v.SetDefault("unsafe", false)
	v.SetDefault("legacyHTML", false)
	v.SetDefault("acceptedOrigins", []string{})
	v.SetDefault("logLevel", "info")
}

// Default is the configuration used when site.yaml sets nothing.
func Default() SiteConfig {
	v := viper.New()
	setDefaults(v)
	cfg := SiteConfig{}
	_ = v.Unmarshal(&cfg)
	return cfg
}

// LoadSiteConfig reads path (or ./site.yaml when path is empty), layering
// defaults, the file and PORTFOLIO_* environment variables. A .env file in the
// working directory is loaded first when present. A missing default file is
// not an error; a missing explicit file is.
func LoadSiteConfig(path string) (SiteConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, filepath.Ext(DefaultConfigFile)))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return SiteConfig{}, fmt.Errorf("could not read config file %s: %w", path, err)
		}
	}

	cfg := SiteConfig{}
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not decode config: %w", err)
	}
	if cfg.PostExt != "" && !strings.HasPrefix(cfg.PostExt, ".") {
		cfg.PostExt = "." + cfg.PostExt
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return cfg, nil
}
