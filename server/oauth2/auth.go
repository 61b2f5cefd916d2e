package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shengfai/socialite/internal/provider/alipay"
	"github.com/shengfai/socialite/internal/provider/providers"
	"github.com/shengfai/socialite/server/middlewares"
	"github.com/shengfai/socialite/server/model"
)

// /oauth2/login/:type
func OAuth2(ctx *gin.Context) {
	pi, err := providers.GetProvider(ctx.Param("type"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewAPIErrorResp(err))
		return
	}

	u, err := pi.NewAuthURL(ctx, states.New(pi.Provider()))
	if err != nil {
		abortWithProviderError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, u)
}

func OAuth2API(ctx *gin.Context) {
	pi, err := providers.GetProvider(ctx.Param("type"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewAPIErrorResp(err))
		return
	}

	u, err := pi.NewAuthURL(ctx, states.New(pi.Provider()))
	if err != nil {
		abortWithProviderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, model.NewAPIDataResp(gin.H{
		"url": u,
	}))
}

// /oauth2/callback/:type
func OAuth2Callback(ctx *gin.Context) {
	req := model.OAuth2CallbackReq{
		// alipay names the code auth_code, other providers use code
		Code:  ctx.Query("auth_code"),
		State: ctx.Query("state"),
	}
	if req.Code == "" {
		req.Code = ctx.Query("code")
	}
	if err := req.Validate(); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewAPIErrorResp(err))
		return
	}
	callback(ctx, &req)
}

func OAuth2CallbackAPI(ctx *gin.Context) {
	req := model.OAuth2CallbackReq{}
	if err := model.Decode(ctx, &req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewAPIErrorResp(err))
		return
	}
	callback(ctx, &req)
}

func callback(ctx *gin.Context, req *model.OAuth2CallbackReq) {
	log := middlewares.GetLogger(ctx)

	pi, err := providers.GetProvider(ctx.Param("type"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewAPIErrorResp(err))
		return
	}

	if !states.LoadAndDelete(pi.Provider(), req.State) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewAPIErrorResp(model.ErrEmptyState))
		return
	}

	ui, err := pi.GetUserInfo(ctx, req.Code)
	if err != nil {
		log.WithError(err).Error("oauth2 callback failed")
		abortWithProviderError(ctx, err)
		return
	}

	log.WithField("provider_user_id", ui.ProviderUserID).Info("oauth2 login")
	ctx.JSON(http.StatusOK, model.NewAPIDataResp(model.NewOAuth2UserResp(pi.Provider(), ui)))
}

func abortWithProviderError(ctx *gin.Context, err error) {
	var (
		pe *alipay.ProviderError
		te *alipay.TransportError
		de *alipay.DecodeError
		ke *alipay.KeyError
		se *alipay.SignatureError
	)
	switch {
	case errors.As(err, &pe):
		ctx.AbortWithStatusJSON(http.StatusBadGateway, model.NewAPIProviderErrorResp(pe.Code, err))
	case errors.As(err, &te), errors.As(err, &de):
		ctx.AbortWithStatusJSON(http.StatusBadGateway, model.NewAPIErrorResp(err))
	case errors.As(err, &ke), errors.As(err, &se):
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, model.NewAPIErrorStringResp("provider misconfigured"))
	default:
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewAPIErrorResp(err))
	}
}
