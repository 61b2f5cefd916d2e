package providers

import (
	"context"

	"github.com/shengfai/socialite/internal/provider"
	"github.com/shengfai/socialite/internal/provider/alipay"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	SettingSignType        = "sign_type"
	SettingAlipayPublicKey = "alipay_public_key"
	SettingGateway         = "gateway"
	SettingAuthURL         = "auth_url"
)

// https://opendocs.alipay.com/open/263/105809
type AlipayProvider struct {
	client *alipay.Client
}

// NewAlipayProvider builds the provider. opts customise the gateway
// transport, e.g. for tests or an egress proxy.
func NewAlipayProvider(c provider.Oauth2Option, opts ...alipay.ClientOption) (provider.Interface, error) {
	cfg := alipay.NewConfig(c.ClientID, c.ClientSecret,
		alipay.WithRedirectURL(c.RedirectURL),
		alipay.WithScopes(c.Scopes...),
		alipay.WithSignType(c.Settings[SettingSignType]),
		alipay.WithAlipayPublicKey(c.Settings[SettingAlipayPublicKey]),
		alipay.WithGateway(c.Settings[SettingGateway]),
		alipay.WithAuthURL(c.Settings[SettingAuthURL]),
	)
	client, err := alipay.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &AlipayProvider{client: client}, nil
}

func (p *AlipayProvider) Provider() provider.OAuth2Provider {
	return "alipay"
}

func (p *AlipayProvider) Client() *alipay.Client {
	return p.client
}

func (p *AlipayProvider) NewAuthURL(_ context.Context, state string) (string, error) {
	return p.client.AuthURL(state)
}

func (p *AlipayProvider) GetToken(ctx context.Context, code string) (*oauth2.Token, error) {
	tk, err := p.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return tk.Token(), nil
}

func (p *AlipayProvider) RefreshToken(ctx context.Context, tk string) (*oauth2.Token, error) {
	newTk, err := p.client.RefreshToken(ctx, tk)
	if err != nil {
		return nil, err
	}
	return newTk.Token(), nil
}

func (p *AlipayProvider) GetUserInfo(ctx context.Context, code string) (*provider.UserInfo, error) {
	tk, up, err := p.client.Login(ctx, code)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"provider": p.Provider(),
		"user_id":  up.ID,
		"open_id":  tk.OpenID,
	}).Debug("alipay: user info fetched")

	id := up.ID
	if id == "" {
		// apps created after the open_id migration only see open_id
		id = tk.OpenID
	}
	return &provider.UserInfo{
		Username:       up.Nickname,
		ProviderUserID: id,
		Avatar:         up.Avatar,
		Extra: map[string]string{
			"province":             up.Province,
			"city":                 up.City,
			"gender":               up.Gender,
			"is_certified":         up.IsCertified,
			"is_student_certified": up.IsStudentCertified,
			"user_status":          up.UserStatus,
		},
	}, nil
}

func init() {
	RegisterProvider("alipay", func(c provider.Oauth2Option) (provider.Interface, error) {
		return NewAlipayProvider(c)
	})
}
