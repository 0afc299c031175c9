package config

import (
	"net"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Vendors  VendorsConfig  `json:"vendors"`
	Logging  LoggingConfig  `json:"logging"`
	Service  ServiceConfig  `json:"service"`
	Database DatabaseConfig `json:"database"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host               string        `json:"host" validate:"required"`
	Port               int           `json:"port" validate:"min=1,max=65535"`
	ReadTimeout        time.Duration `json:"read_timeout" validate:"gt=0"`
	WriteTimeout       time.Duration `json:"write_timeout" validate:"gt=0"`
	IdleTimeout        time.Duration `json:"idle_timeout" validate:"gt=0"`
	MaxRequestBodySize int64         `json:"max_request_body_size" validate:"gt=0"`
	EnablePprof        bool          `json:"enable_pprof"`
}

// Address returns the host:port pair the HTTP server listens on
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// VendorConfig holds the connection settings of one upstream provider.
// An empty APIKey is allowed; calls to that provider fail at request time.
type VendorConfig struct {
	APIKey  string        `json:"-"`
	BaseURL string        `json:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `json:"timeout" validate:"gt=0"`
}

// HasKey reports whether a credential was configured
func (v VendorConfig) HasKey() bool {
	return v.APIKey != ""
}

// VendorsConfig groups the providers the relay talks to
type VendorsConfig struct {
	OpenAI   VendorConfig `json:"openai"`
	DeepSeek VendorConfig `json:"deepseek"`
	Gemini   VendorConfig `json:"gemini"`
	RemoveBG VendorConfig `json:"removebg"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" validate:"oneof=debug info warn warning error"`
	Format string `json:"format" validate:"oneof=json text"`
	Output string `json:"output" validate:"required"`
}

// ServiceConfig identifies the running process in logs, health output and usage records
type ServiceConfig struct {
	Name        string `json:"name" validate:"required"`
	Environment string `json:"environment" validate:"required"`
	Version     string `json:"version"`
}

// DatabaseConfig controls the optional MongoDB usage log.
// Usage logging is disabled when MongoURI is empty.
type DatabaseConfig struct {
	MongoURI string `json:"-"`
}

// Enabled reports whether usage logging should be wired
func (d DatabaseConfig) Enabled() bool {
	return d.MongoURI != ""
}

const (
	DefaultOpenAIBaseURL  = "https://api.openai.com/v1"
	DefaultDeepSeekURL    = "https://api.deepseek.com/v1/chat/completions"
	DefaultRemoveBGURL    = "https://api.remove.bg/v1.0/removebg"
	DefaultVendorTimeout  = 60 * time.Second
	DefaultMaxRequestBody = 1 << 20
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               3000,
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       120 * time.Second,
			IdleTimeout:        60 * time.Second,
			MaxRequestBodySize: DefaultMaxRequestBody,
		},
		Vendors: VendorsConfig{
			OpenAI:   VendorConfig{BaseURL: DefaultOpenAIBaseURL, Timeout: DefaultVendorTimeout},
			DeepSeek: VendorConfig{BaseURL: DefaultDeepSeekURL, Timeout: DefaultVendorTimeout},
			Gemini:   VendorConfig{Timeout: DefaultVendorTimeout},
			RemoveBG: VendorConfig{BaseURL: DefaultRemoveBGURL, Timeout: DefaultVendorTimeout},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Service: ServiceConfig{
			Name:        "ai-proxy-server",
			Environment: "development",
			Version:     "unknown",
		},
	}
}
