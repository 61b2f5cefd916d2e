package conf

import (
	"github.com/shengfai/socialite/utils"
	"gopkg.in/yaml.v3"
)

var Conf *Config

//nolint:tagliatelle
type Config struct {
	// Log
	Log LogConfig `yaml:"log"`

	// Server
	Server ServerConfig `yaml:"server"`

	// RateLimit
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// OAuth2
	OAuth2 OAuth2Config `yaml:"oauth2" envPrefix:"OAUTH2_"`
}

func (c *Config) Save(file string) error {
	return utils.WriteYaml(file, c)
}

// String renders the config as yaml with key material masked.
func (c *Config) String() string {
	masked := *c
	masked.OAuth2.Alipay.ClientSecret = mask(c.OAuth2.Alipay.ClientSecret)
	b, err := yaml.Marshal(&masked)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func DefaultConfig() *Config {
	return &Config{
		// Log
		Log: DefaultLogConfig(),

		// Server
		Server: DefaultServerConfig(),

		// RateLimit
		RateLimit: DefaultRateLimitConfig(),

		// OAuth2
		OAuth2: DefaultOAuth2Config(),
	}
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "******"
}
