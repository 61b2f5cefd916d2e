package alipay_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/shengfai/socialite/internal/provider/alipay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestTimestampIsBeijingTime(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "2024-01-02 11:04:05", alipay.Timestamp(fixedNow))
	la := time.FixedZone("PST", -8*60*60)
	assert.Equal(t, "2024-01-02 11:04:05", alipay.Timestamp(fixedNow.In(la)))
}

func TestTokenRequest(t *testing.T) {
	t.Parallel()
	cfg := alipay.NewConfig("2021000", "s3cr3t", alipay.WithSignType("MD5"), alipay.WithClock(fixedClock))
	p, err := alipay.TokenRequest(cfg, "auth-code", nil)
	require.NoError(t, err)

	assert.Equal(t, "alipay.system.oauth.token", p["method"])
	assert.Equal(t, "2021000", p["app_id"])
	assert.Equal(t, "auth-code", p["code"])
	assert.Equal(t, "authorization_code", p["grant_type"])
	assert.Equal(t, "JSON", p["format"])
	assert.Equal(t, "utf-8", p["charset"])
	assert.Equal(t, "MD5", p["sign_type"])
	assert.Equal(t, "2024-01-02 11:04:05", p["timestamp"])
	assert.Equal(t, "1.0", p["version"])

	want, err := alipay.Sign(cfg, p)
	require.NoError(t, err)
	assert.Equal(t, want, p["sign"])

	again, err := alipay.TokenRequest(cfg, "auth-code", nil)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestProfileRequest(t *testing.T) {
	t.Parallel()
	cfg := alipay.NewConfig("2021000", loadTestKeys().privatePEM, alipay.WithClock(fixedClock))
	p, err := alipay.ProfileRequest(cfg, "access", nil)
	require.NoError(t, err)

	assert.Equal(t, "alipay.user.info.share", p["method"])
	assert.Equal(t, "access", p["auth_token"])
	assert.Equal(t, "RSA2", p["sign_type"])
	assert.NotEmpty(t, p["sign"])
	_, hasCode := p["code"]
	assert.False(t, hasCode)

	assert.NoError(t, alipay.RSAVerify(loadTestKeys().publicPEM, p.Canonical(alipay.SignMode), p["sign"]))
}

func TestRefreshRequest(t *testing.T) {
	t.Parallel()
	cfg := alipay.NewConfig("2021000", "s3cr3t", alipay.WithSignType("MD5"), alipay.WithClock(fixedClock))
	p, err := alipay.RefreshRequest(cfg, "refresh", nil)
	require.NoError(t, err)
	assert.Equal(t, "refresh_token", p["grant_type"])
	assert.Equal(t, "refresh", p["refresh_token"])
	assert.Equal(t, "alipay.system.oauth.token", p["method"])
}

func TestBaseFieldsWinOnCollision(t *testing.T) {
	t.Parallel()
	cfg := alipay.NewConfig("2021000", "s3cr3t", alipay.WithSignType("MD5"), alipay.WithClock(fixedClock))
	extra := alipay.Params{
		"app_id":    "evil",
		"method":    "alipay.trade.refund",
		"sign":      "FORGED",
		"timestamp": "1970-01-01 00:00:00",
		"biz":       "kept",
	}
	p, err := alipay.TokenRequest(cfg, "code", extra)
	require.NoError(t, err)

	assert.Equal(t, "2021000", p["app_id"])
	assert.Equal(t, "alipay.system.oauth.token", p["method"])
	assert.Equal(t, "2024-01-02 11:04:05", p["timestamp"])
	assert.Equal(t, "kept", p["biz"])
	assert.NotEqual(t, "FORGED", p["sign"])
	assert.Equal(t, "evil", extra["app_id"], "caller params must not be mutated")

	want, err := alipay.Sign(cfg, p)
	require.NoError(t, err)
	assert.Equal(t, want, p["sign"])
}

func TestAuthorizationURL(t *testing.T) {
	t.Parallel()
	cfg := alipay.NewConfig("2021000", "s3cr3t",
		alipay.WithRedirectURL("https://example.com/oauth2/callback/alipay"),
		alipay.WithScopes("auth_user", "auth_base"),
	)
	raw, err := alipay.AuthorizationURL(cfg, "st4te")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "openauth.alipay.com", u.Host)
	assert.Equal(t, "/oauth2/publicAppAuthorize.htm", u.Path)
	q := u.Query()
	assert.Equal(t, "2021000", q.Get("client_id"))
	assert.Equal(t, "https://example.com/oauth2/callback/alipay", q.Get("redirect_uri"))
	assert.Equal(t, "auth_user,auth_base", q.Get("scope"))
	assert.Equal(t, "st4te", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Empty(t, q.Get("sign"))
}

func TestRequestURL(t *testing.T) {
	t.Parallel()
	cfg := alipay.NewConfig("2021000", "s3cr3t", alipay.WithGateway("https://openapi-sandbox.dl.alipaydev.com/gateway.do"))
	u, err := alipay.RequestURL(cfg, alipay.Params{"method": "alipay.user.info.share"})
	require.NoError(t, err)
	assert.Equal(t, "https://openapi-sandbox.dl.alipaydev.com/gateway.do?method=alipay.user.info.share", u)
}
