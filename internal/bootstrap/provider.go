package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/shengfai/socialite/cmd/flags"
	"github.com/shengfai/socialite/internal/conf"
	"github.com/shengfai/socialite/internal/provider/providers"
	"github.com/shengfai/socialite/utils"
	log "github.com/sirupsen/logrus"
)

// optKeyPath resolves a key given as a relative .pem path against the
// data dir. Inline key material is returned unchanged.
func optKeyPath(key string) (string, error) {
	if !strings.HasSuffix(key, ".pem") {
		return key, nil
	}
	return utils.OptFilePath(flags.Global.DataDir, key)
}

func InitProvider(ctx context.Context) (err error) {
	c := conf.Conf.OAuth2.Alipay
	if !c.Enable {
		log.Info("oauth2: alipay disabled")
		return nil
	}
	c.ClientSecret, err = optKeyPath(c.ClientSecret)
	if err != nil {
		return fmt.Errorf("oauth2: alipay client secret path: %w", err)
	}
	c.AlipayPublicKey, err = optKeyPath(c.AlipayPublicKey)
	if err != nil {
		return fmt.Errorf("oauth2: alipay public key path: %w", err)
	}
	pi, err := providers.InitProvider("alipay", c.Option())
	if err != nil {
		return fmt.Errorf("oauth2: init alipay provider: %w", err)
	}
	log.Infof("oauth2: enabled provider: %s", pi.Provider())
	return nil
}
