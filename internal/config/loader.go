package config

import (
	"strings"
)

// Load builds the configuration from defaults and the process environment,
// then validates it. Vendor API keys are optional.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error

	c.Server.Host = GetEnvWithDefault("HOST", c.Server.Host)
	if c.Server.Port, err = getEnvInt("PORT", c.Server.Port); err != nil {
		return err
	}
	if c.Server.ReadTimeout, err = getEnvDuration("READ_TIMEOUT", c.Server.ReadTimeout); err != nil {
		return err
	}
	if c.Server.WriteTimeout, err = getEnvDuration("WRITE_TIMEOUT", c.Server.WriteTimeout); err != nil {
		return err
	}
	if c.Server.IdleTimeout, err = getEnvDuration("IDLE_TIMEOUT", c.Server.IdleTimeout); err != nil {
		return err
	}
	if c.Server.MaxRequestBodySize, err = getEnvInt64("MAX_REQUEST_BODY_SIZE", c.Server.MaxRequestBodySize); err != nil {
		return err
	}
	c.Server.EnablePprof = GetEnvBool("ENABLE_PPROF", c.Server.EnablePprof)

	vendorTimeout, err := getEnvDuration("VENDOR_TIMEOUT", DefaultVendorTimeout)
	if err != nil {
		return err
	}

	c.Vendors.OpenAI.APIKey = GetEnvWithDefault("OPENAI_API_KEY", "")
	c.Vendors.OpenAI.BaseURL = strings.TrimRight(GetEnvWithDefault("OPENAI_BASE_URL", c.Vendors.OpenAI.BaseURL), "/")
	c.Vendors.OpenAI.Timeout = vendorTimeout

	c.Vendors.DeepSeek.APIKey = GetEnvWithDefault("DEEPSEEK_API_KEY", "")
	c.Vendors.DeepSeek.BaseURL = GetEnvWithDefault("DEEPSEEK_API_URL", c.Vendors.DeepSeek.BaseURL)
	c.Vendors.DeepSeek.Timeout = vendorTimeout

	c.Vendors.Gemini.APIKey = GetEnvWithDefault("GEMINI_API_KEY", "")
	c.Vendors.Gemini.BaseURL = GetEnvWithDefault("GEMINI_BASE_URL", c.Vendors.Gemini.BaseURL)
	c.Vendors.Gemini.Timeout = vendorTimeout

	c.Vendors.RemoveBG.APIKey = GetEnvWithDefault("REMOVEBG_API_KEY", "")
	c.Vendors.RemoveBG.BaseURL = GetEnvWithDefault("REMOVEBG_API_URL", c.Vendors.RemoveBG.BaseURL)
	c.Vendors.RemoveBG.Timeout = vendorTimeout

	c.Logging.Level = strings.ToLower(GetEnvWithDefault("LOG_LEVEL", c.Logging.Level))
	c.Logging.Format = strings.ToLower(GetEnvWithDefault("LOG_FORMAT", c.Logging.Format))
	c.Logging.Output = GetEnvWithDefault("LOG_OUTPUT", c.Logging.Output)

	c.Service.Name = GetEnvWithDefault("SERVICE_NAME", c.Service.Name)
	c.Service.Environment = GetEnvWithDefault("ENVIRONMENT", GetEnvWithDefault("ENV", c.Service.Environment))
	c.Service.Version = GetEnvWithDefault("VERSION", c.Service.Version)

	c.Database.MongoURI = GetEnvWithDefault("MONGODB_URI", "")

	return nil
}
