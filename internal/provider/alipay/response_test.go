package alipay_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shengfai/socialite/internal/provider/alipay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileResponse(t *testing.T) {
	t.Parallel()
	body := []byte(`{"alipay_user_info_share_response":{"user_id":"123","nick_name":"Alice","gender":"f"}}`)
	up, err := alipay.ParseProfileResponse(alipay.Config{}, body)
	require.NoError(t, err)

	assert.Equal(t, "123", up.ID)
	assert.Equal(t, "Alice", up.Nickname)
	assert.Equal(t, "Alice", up.Name)
	assert.Equal(t, "f", up.Gender)
	assert.Equal(t, "", up.Avatar)
	assert.Equal(t, "", up.Province)
	assert.Equal(t, "", up.City)
	assert.Equal(t, "", up.IsCertified)
	assert.Equal(t, "", up.IsStudentCertified)
	assert.Equal(t, "", up.UserStatus)
}

func TestParseProfileFullNode(t *testing.T) {
	t.Parallel()
	body := []byte(`{"alipay_user_info_share_response":{"code":"10000","msg":"Success",
		"user_id":"2088102104794936","avatar":"http:\/\/tfsimg.alipay.com\/images\/partner\/T1uIxXXbpXXXXXXXX",
		"province":"安徽省","city":"安庆","nick_name":"支付宝小二","is_student_certified":"T",
		"user_status":"T","is_certified":"T","gender":"F"},"sign":"ERITJKEIJKJHKKKKKKKHJEREEEEEEEEEEE"}`)
	up, err := alipay.ParseProfileResponse(alipay.Config{}, body)
	require.NoError(t, err)
	assert.Equal(t, "2088102104794936", up.ID)
	assert.Equal(t, "http://tfsimg.alipay.com/images/partner/T1uIxXXbpXXXXXXXX", up.Avatar)
	assert.Equal(t, "安徽省", up.Province)
	assert.Equal(t, "安庆", up.City)
	assert.Equal(t, "T", up.IsStudentCertified)
	assert.Equal(t, "T", up.UserStatus)
	assert.Equal(t, "T", up.IsCertified)
	assert.Equal(t, "F", up.Gender)
}

func TestErrorEnvelope(t *testing.T) {
	t.Parallel()
	body := []byte(`{"error_response":{"code":"40004","sub_msg":"Invalid sign"}}`)
	for name, parse := range map[string]func() error{
		"token": func() error {
			_, err := alipay.ParseTokenResponse(alipay.Config{}, body)
			return err
		},
		"profile": func() error {
			_, err := alipay.ParseProfileResponse(alipay.Config{}, body)
			return err
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := parse()
			var pe *alipay.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "40004", pe.Code)
			assert.Equal(t, "Invalid sign", pe.Message)
			var de *alipay.DecodeError
			assert.NotErrorAs(t, err, &de)
		})
	}
}

func TestErrorEnvelopeFallsBackToMsg(t *testing.T) {
	t.Parallel()
	body := []byte(`{"error_response":{"code":"20001","msg":"Insufficient Token Permissions","sub_code":"aop.invalid-auth-token"}}`)
	_, err := alipay.ParseTokenResponse(alipay.Config{}, body)
	var pe *alipay.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Insufficient Token Permissions", pe.Message)
	assert.Equal(t, "aop.invalid-auth-token", pe.SubCode)
}

func TestBusinessErrorInsideSuccessNode(t *testing.T) {
	t.Parallel()
	body := []byte(`{"alipay_user_info_share_response":{"code":"20001","msg":"Insufficient Token Permissions","sub_code":"aop.invalid-auth-token","sub_msg":"无效的访问令牌"}}`)
	_, err := alipay.ParseProfileResponse(alipay.Config{}, body)
	var pe *alipay.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "20001", pe.Code)
	assert.Equal(t, "无效的访问令牌", pe.Message)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"alipay_system_oauth_token_response":`},
		{name: "not json", body: `<html>bad gateway</html>`},
		{name: "no root", body: `{"something_else":{}}`},
		{name: "both roots", body: `{"alipay_system_oauth_token_response":{"access_token":"a"},"error_response":{"code":"40004"}}`},
		{name: "null node", body: `{"alipay_system_oauth_token_response":null}`},
		{name: "no access token", body: `{"alipay_system_oauth_token_response":{"user_id":"1"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alipay.ParseTokenResponse(alipay.Config{}, []byte(tt.body))
			var de *alipay.DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestParseTokenResponse(t *testing.T) {
	t.Parallel()
	body := []byte(`{"alipay_system_oauth_token_response":{"user_id":"2088102150477652","access_token":"20120823ac6ffaa4d2d84e7384bf983531473993","expires_in":3600,"refresh_token":"20120823ac6ffdsdf2d84e7384bf983531473993","re_expires_in":"3600","auth_start":"2010-11-11 11:11:11","open_id":"074a1CcTG1LelxKe4xQC0zgNdId0nxi95b5lsNpazWYoCo5"},"sign":"x"}`)
	cfg := alipay.Config{Clock: fixedClock}
	tr, err := alipay.ParseTokenResponse(cfg, body)
	require.NoError(t, err)

	assert.Equal(t, "20120823ac6ffaa4d2d84e7384bf983531473993", tr.AccessToken)
	assert.Equal(t, "20120823ac6ffdsdf2d84e7384bf983531473993", tr.RefreshToken)
	assert.Equal(t, "2088102150477652", tr.UserID)
	assert.Equal(t, "074a1CcTG1LelxKe4xQC0zgNdId0nxi95b5lsNpazWYoCo5", tr.OpenID)
	assert.Equal(t, int64(3600), tr.ExpiresIn)
	assert.Equal(t, int64(3600), tr.ReExpiresIn)
	assert.Equal(t, "Bearer", tr.TokenType)

	tk := tr.Token()
	assert.Equal(t, tr.AccessToken, tk.AccessToken)
	assert.Equal(t, fixedNow.Add(time.Hour), tk.Expiry)
	assert.Equal(t, "2088102150477652", fmt.Sprint(tk.Extra("user_id")))
}

func TestResponseSignatureVerification(t *testing.T) {
	t.Parallel()
	keys := loadTestKeys()
	node := `{"user_id":"123","nick_name":"Alice","code":"10000","msg":"Success"}`
	sign, err := alipay.RSASign(keys.privatePEM, node)
	require.NoError(t, err)

	cfg := alipay.Config{AlipayPublicKey: keys.publicPEM}

	body := fmt.Sprintf(`{"alipay_user_info_share_response":%s,"sign":%q}`, node, sign)
	up, err := alipay.ParseProfileResponse(cfg, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "Alice", up.Nickname)

	tampered := fmt.Sprintf(`{"alipay_user_info_share_response":%s,"sign":%q}`,
		`{"user_id":"124","nick_name":"Alice","code":"10000","msg":"Success"}`, sign)
	_, err = alipay.ParseProfileResponse(cfg, []byte(tampered))
	var se *alipay.SignatureError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, alipay.ErrSignatureMismatch)
}

func TestUnsignedResponseRejectedWithPublicKey(t *testing.T) {
	t.Parallel()
	keys := loadTestKeys()
	cfg := alipay.Config{AlipayPublicKey: keys.publicPEM}

	_, err := alipay.ParseProfileResponse(cfg,
		[]byte(`{"alipay_user_info_share_response":{"code":"10000","user_id":"2088","nick_name":"Mallory"}}`))
	var se *alipay.SignatureError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, alipay.ErrMissingSign)

	_, err = alipay.ParseTokenResponse(cfg,
		[]byte(`{"alipay_system_oauth_token_response":{"access_token":"tok","user_id":"2088"}}`))
	assert.ErrorIs(t, err, alipay.ErrMissingSign)

	// error envelopes carry no signature to check
	_, err = alipay.ParseTokenResponse(cfg,
		[]byte(`{"error_response":{"code":"40002","msg":"Invalid Arguments"}}`))
	var pe *alipay.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "40002", pe.Code)
}

func TestResponseRoot(t *testing.T) {
	t.Parallel()
	assert.Equal(t, alipay.RootOAuthToken, alipay.ResponseRoot(alipay.MethodOAuthToken))
	assert.Equal(t, alipay.RootUserInfoShare, alipay.ResponseRoot(alipay.MethodUserInfoShare))
}
