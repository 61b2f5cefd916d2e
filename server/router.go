package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shengfai/socialite/internal/conf"
	"github.com/shengfai/socialite/server/middlewares"
	auth "github.com/shengfai/socialite/server/oauth2"
)

func Init(e *gin.Engine) error {
	if err := middlewares.Init(e); err != nil {
		return err
	}
	ttl, err := time.ParseDuration(conf.Conf.Server.StateTTL)
	if err != nil {
		return fmt.Errorf("state ttl: %w", err)
	}
	auth.Init(e, ttl)
	return nil
}

func NewAndInit() (*gin.Engine, error) {
	e := gin.New()
	if err := Init(e); err != nil {
		return nil, err
	}
	return e, nil
}
