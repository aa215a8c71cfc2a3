package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server-level settings loaded from the config file and
// environment. The site's runtime document (theme, feature flags, links) is a
// separate concern handled by the siteconfig package.
type Config struct {
	Env            string `mapstructure:"env"`              // local, dev, prod
	Port           string `mapstructure:"port"`             // HTTP listen port
	TemplatesDir   string `mapstructure:"templates_dir"`    // html/template sources
	PublicDir      string `mapstructure:"public_dir"`       // static assets
	LocalesDir     string `mapstructure:"locales_dir"`      // per-language JSON trees
	ContentDir     string `mapstructure:"content_dir"`      // localized markdown pages
	SiteConfigPath string `mapstructure:"site_config_path"` // local configuration document
	SiteConfigURL  string `mapstructure:"site_config_url"`  // remote configuration document, wins over path
}

// Addr returns the listen address derived from Port.
func (c *Config) Addr() string { return ":" + c.Port }

// Load reads configuration from config/config.yaml (when present) and the
// ALMA_WEB_* environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("port", "8080")
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("public_dir", "public")
	v.SetDefault("locales_dir", "locales")
	v.SetDefault("content_dir", "content/pages")
	v.SetDefault("site_config_path", "config/site.json")
	v.SetDefault("site_config_url", "")

	v.SetEnvPrefix("ALMA_WEB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "ALMA_WEB_ENV", "APP_ENV")
	_ = v.BindEnv("port", "ALMA_WEB_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}
