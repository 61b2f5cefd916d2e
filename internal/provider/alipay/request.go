package alipay

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	MethodOAuthToken    = "alipay.system.oauth.token"
	MethodUserInfoShare = "alipay.user.info.share"

	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeRefreshToken      = "refresh_token"

	// TimestampLayout is the gateway's timestamp format.
	TimestampLayout = time.DateTime
)

// The gateway interprets timestamps as Beijing time regardless of the
// caller's zone. A fixed zone keeps this independent of tzdata.
var gatewayLocation = time.FixedZone("CST", 8*60*60)

// Timestamp formats t the way the gateway expects it.
func Timestamp(t time.Time) string {
	return t.In(gatewayLocation).Format(TimestampLayout)
}

func oauth2Config(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    cfg.AppID,
		RedirectURL: cfg.RedirectURL,
		Scopes:      cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AuthURL,
			TokenURL: cfg.Gateway,
		},
	}
}

// AuthorizationURL returns the page the user is redirected to. state is
// opaque here; the caller checks it on the callback.
func AuthorizationURL(cfg Config, state string) (string, error) {
	cfg = cfg.withDefaults()
	if _, err := url.Parse(cfg.AuthURL); err != nil {
		return "", err
	}
	oc := oauth2Config(cfg)
	// the authorize page takes a comma separated scope list
	oc.Scopes = []string{strings.Join(cfg.Scopes, ",")}
	return oc.AuthCodeURL(state), nil
}

func publicFields(cfg Config, method string) Params {
	return Params{
		"method":    method,
		"app_id":    cfg.AppID,
		"format":    cfg.Format,
		"charset":   cfg.Charset,
		"sign_type": cfg.SignType,
		"timestamp": Timestamp(cfg.Clock()),
		"version":   cfg.Version,
	}
}

// buildSigned merges caller parameters under the base fields and appends
// the signature. Base fields win every collision and sign is always
// computed here.
func buildSigned(cfg Config, base, extra Params) (Params, error) {
	p := merge(extra, base)
	delete(p, fieldSign)
	sign, err := Sign(cfg, p)
	if err != nil {
		return nil, err
	}
	p[fieldSign] = sign
	return p, nil
}

// TokenRequest builds the signed parameters that exchange an
// authorization code for an access token.
func TokenRequest(cfg Config, code string, extra Params) (Params, error) {
	cfg = cfg.withDefaults()
	base := publicFields(cfg, MethodOAuthToken)
	base["grant_type"] = GrantTypeAuthorizationCode
	base["code"] = code
	return buildSigned(cfg, base, extra)
}

// RefreshRequest builds the signed parameters that trade a refresh token
// for a new access token.
func RefreshRequest(cfg Config, refreshToken string, extra Params) (Params, error) {
	cfg = cfg.withDefaults()
	base := publicFields(cfg, MethodOAuthToken)
	base["grant_type"] = GrantTypeRefreshToken
	base["refresh_token"] = refreshToken
	return buildSigned(cfg, base, extra)
}

// ProfileRequest builds the signed parameters that fetch the shared user
// profile for accessToken.
func ProfileRequest(cfg Config, accessToken string, extra Params) (Params, error) {
	cfg = cfg.withDefaults()
	base := publicFields(cfg, MethodUserInfoShare)
	base["auth_token"] = accessToken
	return buildSigned(cfg, base, extra)
}

// Encode renders p as a query string for the gateway.
func (p Params) Encode() string {
	v := make(url.Values, len(p))
	for k, s := range p {
		v.Set(k, s)
	}
	return v.Encode()
}

// RequestURL joins the gateway and the encoded parameters.
func RequestURL(cfg Config, p Params) (string, error) {
	cfg = cfg.withDefaults()
	u, err := url.Parse(cfg.Gateway)
	if err != nil {
		return "", err
	}
	u.RawQuery = p.Encode()
	return u.String(), nil
}
