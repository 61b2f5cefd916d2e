package model

import (
	"errors"

	"github.com/gin-gonic/gin"
	json "github.com/json-iterator/go"
	"github.com/shengfai/socialite/internal/provider"
)

var (
	ErrEmptyCode  = errors.New("invalid oauth2 code")
	ErrEmptyState = errors.New("invalid oauth2 state")
)

type Decoder interface {
	Decode(ctx *gin.Context) error
	Validate() error
}

func Decode(ctx *gin.Context, decoder Decoder) error {
	if err := decoder.Decode(ctx); err != nil {
		return err
	}
	return decoder.Validate()
}

type OAuth2CallbackReq struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

func (o *OAuth2CallbackReq) Decode(ctx *gin.Context) error {
	return json.NewDecoder(ctx.Request.Body).Decode(o)
}

func (o *OAuth2CallbackReq) Validate() error {
	if o.Code == "" {
		return ErrEmptyCode
	}
	if o.State == "" {
		return ErrEmptyState
	}
	return nil
}

type OAuth2UserResp struct {
	Provider       provider.OAuth2Provider `json:"provider"`
	ProviderUserID string                  `json:"providerUserId"`
	Username       string                  `json:"username"`
	Avatar         string                  `json:"avatar,omitempty"`
	Extra          map[string]string       `json:"extra,omitempty"`
}

func NewOAuth2UserResp(p provider.OAuth2Provider, ui *provider.UserInfo) *OAuth2UserResp {
	return &OAuth2UserResp{
		Provider:       p,
		ProviderUserID: ui.ProviderUserID,
		Username:       ui.Username,
		Avatar:         ui.Avatar,
		Extra:          ui.Extra,
	}
}
