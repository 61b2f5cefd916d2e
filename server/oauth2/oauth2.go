package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shengfai/socialite/internal/provider/providers"
	"github.com/shengfai/socialite/server/model"
)

func OAuth2EnabledAPI(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.NewAPIDataResp(gin.H{
		"enabled": providers.EnabledProvider(),
	}))
}
