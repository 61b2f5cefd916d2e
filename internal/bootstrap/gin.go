package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shengfai/socialite/cmd/flags"
	"github.com/shengfai/socialite/utils"
)

func InitGinMode(ctx context.Context) error {
	if flags.Global.Dev {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if !flags.Server.DisableLogColor && utils.ForceColor() {
		gin.ForceConsoleColor()
	} else {
		gin.DisableConsoleColor()
	}

	return nil
}
