package conf

import (
	"github.com/shengfai/socialite/internal/provider"
	"github.com/shengfai/socialite/internal/provider/alipay"
	"github.com/shengfai/socialite/internal/provider/providers"
)

type OAuth2Config struct {
	Alipay AlipayConfig `yaml:"alipay" envPrefix:"ALIPAY_"`
}

//nolint:tagliatelle
type AlipayConfig struct {
	Enable          bool     `env:"ENABLE"            yaml:"enable"`
	ClientID        string   `env:"CLIENT_ID"         yaml:"client_id"         hc:"the app id of the open platform application"`
	ClientSecret    string   `env:"CLIENT_SECRET"     yaml:"client_secret"     hc:"application private key (pem, bare base64 or path to a .pem file) for RSA2, shared secret otherwise"`
	AlipayPublicKey string   `env:"ALIPAY_PUBLIC_KEY" yaml:"alipay_public_key" hc:"verifies gateway response signatures when set (pem, bare base64 or path)"`
	RedirectURL     string   `env:"REDIRECT_URL"      yaml:"redirect_url"`
	Scopes          []string `env:"SCOPES"            yaml:"scopes"            lc:"default: auth_user"`
	SignType        string   `env:"SIGN_TYPE"         yaml:"sign_type"         hc:"can be set: RSA2 | MD5 | SHA1 | SHA256 | SHA3-256"`
	Gateway         string   `env:"GATEWAY"           yaml:"gateway"`
	AuthURL         string   `env:"AUTH_URL"          yaml:"auth_url"`
}

// Option converts the config to the provider factory input.
func (c AlipayConfig) Option() provider.Oauth2Option {
	return provider.Oauth2Option{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       c.Scopes,
		Settings: map[string]string{
			providers.SettingSignType:        c.SignType,
			providers.SettingAlipayPublicKey: c.AlipayPublicKey,
			providers.SettingGateway:         c.Gateway,
			providers.SettingAuthURL:         c.AuthURL,
		},
	}
}

func DefaultOAuth2Config() OAuth2Config {
	return OAuth2Config{
		Alipay: AlipayConfig{
			Enable:   false,
			Scopes:   alipay.DefaultScopes,
			SignType: alipay.DefaultSignType,
			Gateway:  alipay.DefaultGateway,
			AuthURL:  alipay.DefaultAuthURL,
		},
	}
}
