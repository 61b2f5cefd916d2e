package provider

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

type OAuth2Provider = string

type UserInfo struct {
	Username       string
	ProviderUserID string
	Avatar         string
	// Extra carries provider specific profile fields.
	Extra map[string]string
}

// Oauth2Option is the per-provider configuration handed to a factory.
type Oauth2Option struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	// Settings carries provider specific keys (sign type, gateway, ...).
	Settings map[string]string
}

type Interface interface {
	Provider() OAuth2Provider
	NewAuthURL(ctx context.Context, state string) (string, error)
	GetToken(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, code string) (*UserInfo, error)
}

// Factory builds a provider from its configuration. Providers are
// immutable once built.
type Factory func(Oauth2Option) (Interface, error)

type FormatErrNotImplemented string

func (f FormatErrNotImplemented) Error() string {
	return fmt.Sprintf("%s not implemented", string(f))
}
