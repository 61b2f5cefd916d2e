package providers

import (
	"sort"

	"github.com/shengfai/socialite/internal/provider"
	"github.com/zijiren233/gencontainer/rwmap"
)

var (
	allowedProviders rwmap.RWMap[provider.OAuth2Provider, provider.Factory]
	enabledProviders rwmap.RWMap[provider.OAuth2Provider, provider.Interface]
)

// InitProvider builds the provider p from c and enables it, replacing any
// provider previously enabled under the same name.
func InitProvider(p provider.OAuth2Provider, c provider.Oauth2Option) (provider.Interface, error) {
	f, ok := allowedProviders.Load(p)
	if !ok {
		return nil, provider.FormatErrNotImplemented(p)
	}
	pi, err := f(c)
	if err != nil {
		return nil, err
	}
	enabledProviders.Store(pi.Provider(), pi)
	return pi, nil
}

func RegisterProvider(name provider.OAuth2Provider, f provider.Factory) {
	allowedProviders.Store(name, f)
}

func GetProvider(p provider.OAuth2Provider) (provider.Interface, error) {
	pi, ok := enabledProviders.Load(p)
	if !ok {
		return nil, provider.FormatErrNotImplemented(p)
	}
	return pi, nil
}

func DisableProvider(p provider.OAuth2Provider) {
	enabledProviders.LoadAndDelete(p)
}

// AllowedProvider lists the registered provider names in order.
func AllowedProvider() []provider.OAuth2Provider {
	var names []provider.OAuth2Provider
	allowedProviders.Range(func(key provider.OAuth2Provider, _ provider.Factory) bool {
		names = append(names, key)
		return true
	})
	sort.Strings(names)
	return names
}

// EnabledProvider lists the enabled provider names in order.
func EnabledProvider() []provider.OAuth2Provider {
	var names []provider.OAuth2Provider
	enabledProviders.Range(func(key provider.OAuth2Provider, _ provider.Interface) bool {
		names = append(names, key)
		return true
	})
	sort.Strings(names)
	return names
}
