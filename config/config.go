package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Weather  WeatherConfig  `yaml:"weather"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME" default:"farm-advisor"`
	Version string `yaml:"version" envconfig:"APP_VERSION" default:"1.0.0"`
	Env     string `yaml:"env" envconfig:"APP_ENV" default:"development"`
}

type ServerConfig struct {
	Port string `yaml:"port" envconfig:"PORT" default:"8080"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL" default:"debug"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT" default:"json"`
	// SentryDSN enables the error-forwarding hook when set.
	SentryDSN string `yaml:"sentry_dsn" envconfig:"SENTRY_DSN"`
}

type WeatherConfig struct {
	// APIKey is the OpenWeather key used by both the geocoding and the
	// forecast endpoints.
	APIKey         string `yaml:"api_key" envconfig:"OPENWEATHER_API_KEY"`
	GeoBaseURL     string `yaml:"geo_base_url" envconfig:"OPENWEATHER_GEO_BASE_URL" default:"http://api.openweathermap.org/geo/1.0/direct"`
	ForecastURL    string `yaml:"forecast_base_url" envconfig:"OPENWEATHER_FORECAST_BASE_URL" default:"http://api.openweathermap.org/data/2.5/forecast"`
	RequestTimeout int    `yaml:"request_timeout" envconfig:"WEATHER_REQUEST_TIMEOUT" default:"12"` // seconds

	// Time-bounded memoization of upstream calls, in minutes.
	GeoCacheTTL      int `yaml:"geo_cache_ttl" envconfig:"GEO_CACHE_TTL" default:"30"`
	ForecastCacheTTL int `yaml:"forecast_cache_ttl" envconfig:"FORECAST_CACHE_TTL" default:"15"`

	// Upstream rate limiting.
	RateRPS   float64 `yaml:"rate_rps" envconfig:"WEATHER_RATE_RPS" default:"5"`
	RateBurst int     `yaml:"rate_burst" envconfig:"WEATHER_RATE_BURST" default:"10"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" envconfig:"JWT_SECRET" default:"change-me"`
	TokenTTL  int    `yaml:"token_ttl" envconfig:"AUTH_TOKEN_TTL" default:"24"` // hours

	// Administrator bypass credential, checked before the user registry.
	AdminEmail    string `yaml:"admin_email" envconfig:"ADMIN_EMAIL" default:"admin@farm-advisor.local"`
	AdminPassword string `yaml:"admin_password" envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" envconfig:"DATABASE_PATH" default:"farm-advisor.db"`
}

const defaultConfigPath = "config/config.yaml"

func NewConfig() *Config {
	cnf, err := NewConfigFromFile(defaultConfigPath)
	if err != nil {
		panic(err)
	}
	return cnf
}

// NewConfigFromFile reads the YAML file when present, then overrides with
// environment variables. A missing file is not an error; env and defaults win.
func NewConfigFromFile(path string) (*Config, error) {
	var cnf Config

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return &cnf, nil
}
