// Package alipay builds and signs Alipay open platform gateway requests
// for the user authorization flow and parses the signed replies.
package alipay

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultGateway = "https://openapi.alipay.com/gateway.do"
	DefaultAuthURL = "https://openauth.alipay.com/oauth2/publicAppAuthorize.htm"

	DefaultFormat   = "JSON"
	DefaultCharset  = "utf-8"
	DefaultVersion  = "1.0"
	DefaultSignType = SignTypeRSA2

	// SignTypeRSA2 is RSA with SHA256, the only asymmetric type the
	// gateway still accepts.
	SignTypeRSA2 = "RSA2"
)

// DefaultScopes asks for the shared user profile.
var DefaultScopes = []string{"auth_user"}

// SignatureScheme is the family of signature algorithm in use.
type SignatureScheme int

const (
	KeyedHash SignatureScheme = iota
	AsymmetricRSA
)

func (s SignatureScheme) String() string {
	switch s {
	case KeyedHash:
		return "keyed-hash"
	case AsymmetricRSA:
		return "rsa"
	default:
		return fmt.Sprintf("SignatureScheme(%d)", int(s))
	}
}

// Config is the immutable per-application configuration. It is passed by
// value into every operation.
type Config struct {
	AppID string
	// Secret is the shared secret for keyed-hash signing, or the RSA
	// private key: PEM content, bare base64 body, or a path to a .pem file.
	Secret string
	// AlipayPublicKey verifies gateway signatures. Optional.
	AlipayPublicKey string

	RedirectURL string
	Scopes      []string

	// SignType is sent as sign_type and selects the scheme: RSA2 is
	// asymmetric, any registered hash name (MD5, SHA256, ...) is keyed hash.
	SignType string

	Gateway string
	AuthURL string
	Format  string
	Charset string
	Version string

	// Clock supplies the request timestamp. Defaults to time.Now.
	Clock func() time.Time
}

type ConfigOption func(*Config)

func WithRedirectURL(u string) ConfigOption {
	return func(c *Config) {
		c.RedirectURL = u
	}
}

func WithScopes(scopes ...string) ConfigOption {
	return func(c *Config) {
		c.Scopes = scopes
	}
}

func WithSignType(t string) ConfigOption {
	return func(c *Config) {
		c.SignType = t
	}
}

func WithAlipayPublicKey(key string) ConfigOption {
	return func(c *Config) {
		c.AlipayPublicKey = key
	}
}

func WithGateway(u string) ConfigOption {
	return func(c *Config) {
		c.Gateway = u
	}
}

func WithAuthURL(u string) ConfigOption {
	return func(c *Config) {
		c.AuthURL = u
	}
}

func WithClock(clock func() time.Time) ConfigOption {
	return func(c *Config) {
		c.Clock = clock
	}
}

// NewConfig returns a Config with gateway defaults filled in.
func NewConfig(appID, secret string, opts ...ConfigOption) Config {
	c := Config{
		AppID:  appID,
		Secret: secret,
	}
	for _, o := range opts {
		o(&c)
	}
	return c.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.SignType == "" {
		c.SignType = DefaultSignType
	}
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes
	}
	if c.Gateway == "" {
		c.Gateway = DefaultGateway
	}
	if c.AuthURL == "" {
		c.AuthURL = DefaultAuthURL
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Charset == "" {
		c.Charset = DefaultCharset
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}

// Scheme derives the signature scheme from SignType.
func (c Config) Scheme() SignatureScheme {
	if strings.EqualFold(c.SignType, SignTypeRSA2) {
		return AsymmetricRSA
	}
	return KeyedHash
}

// Validate checks the fields every operation needs.
func (c Config) Validate() error {
	if c.AppID == "" {
		return fmt.Errorf("alipay: app id is empty")
	}
	if c.Secret == "" {
		return &KeyError{Err: ErrMissingKey}
	}
	if c.Scheme() == KeyedHash {
		if _, err := LookupHash(c.SignType); err != nil {
			return err
		}
	}
	return nil
}
