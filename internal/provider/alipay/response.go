package alipay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/json-iterator/go"
	"golang.org/x/oauth2"
)

const (
	RootErrorResponse = "error_response"
	RootOAuthToken    = "alipay_system_oauth_token_response"
	RootUserInfoShare = "alipay_user_info_share_response"

	// CodeSuccess is the business code of a successful call.
	CodeSuccess = "10000"
)

var jsonNumber = json.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// ResponseRoot maps a gateway method to the root key of its success
// envelope: "alipay.user.info.share" -> "alipay_user_info_share_response".
func ResponseRoot(method string) string {
	return strings.ReplaceAll(method, ".", "_") + "_response"
}

type errorBody struct {
	Code    string `json:"code"`
	Msg     string `json:"msg"`
	SubCode string `json:"sub_code"`
	SubMsg  string `json:"sub_msg"`
}

func (b *errorBody) providerError() *ProviderError {
	msg := b.SubMsg
	if msg == "" {
		msg = b.Msg
	}
	return &ProviderError{
		Code:    b.Code,
		Message: msg,
		Msg:     b.Msg,
		SubCode: b.SubCode,
	}
}

// Envelope is a decoded gateway response whose success node has been
// located. Node keeps the exact bytes the gateway signed.
type Envelope struct {
	Root   string
	Node   json.RawMessage
	Sign   string
	Fields map[string]any
}

// DecodeEnvelope splits body into its success node or its error
// envelope. Exactly one of root and error_response must be present.
func DecodeEnvelope(body []byte, root string) (*Envelope, error) {
	var nodes map[string]json.RawMessage
	if err := json.Unmarshal(body, &nodes); err != nil {
		return nil, &DecodeError{Body: body, Err: err}
	}
	errNode, hasErr := nodes[RootErrorResponse]
	okNode, hasOK := nodes[root]
	if hasErr == hasOK {
		return nil, &DecodeError{
			Body: body,
			Err:  fmt.Errorf("envelope must carry exactly one of %s or %s", root, RootErrorResponse),
		}
	}
	if hasErr {
		var eb errorBody
		if err := json.Unmarshal(errNode, &eb); err != nil {
			return nil, &DecodeError{Body: body, Err: err}
		}
		return nil, eb.providerError()
	}

	env := &Envelope{Root: root, Node: okNode}
	if s, ok := nodes[fieldSign]; ok {
		if err := json.Unmarshal(s, &env.Sign); err != nil {
			return nil, &DecodeError{Body: body, Err: fmt.Errorf("sign: %w", err)}
		}
	}
	if err := jsonNumber.Unmarshal(okNode, &env.Fields); err != nil {
		return nil, &DecodeError{Body: body, Err: err}
	}
	if env.Fields == nil {
		return nil, &DecodeError{Body: body, Err: fmt.Errorf("%s is null", root)}
	}
	return env, nil
}

// Verify checks the gateway signature over the raw success node.
func (e *Envelope) Verify(publicKey string) error {
	if e.Sign == "" {
		return &SignatureError{Err: ErrMissingSign}
	}
	return RSAVerify(publicKey, string(e.Node), e.Sign)
}

// businessError reports a failure carried inside the success node.
func (e *Envelope) businessError() error {
	code := stringField(e.Fields, "code")
	if code == "" || code == CodeSuccess {
		return nil
	}
	eb := errorBody{
		Code:    code,
		Msg:     stringField(e.Fields, "msg"),
		SubCode: stringField(e.Fields, "sub_code"),
		SubMsg:  stringField(e.Fields, "sub_msg"),
	}
	return eb.providerError()
}

func parseResponse(cfg Config, body []byte, root string) (*Envelope, error) {
	env, err := DecodeEnvelope(body, root)
	if err != nil {
		return nil, err
	}
	// with a public key configured every success node must be signed
	if cfg.AlipayPublicKey != "" {
		if err := env.Verify(cfg.AlipayPublicKey); err != nil {
			return nil, err
		}
	}
	if err := env.businessError(); err != nil {
		return nil, err
	}
	return env, nil
}

func stringField(m map[string]any, k string) string {
	switch v := m[k].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func intField(m map[string]any, k string) int64 {
	s := stringField(m, k)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return int64(f)
	}
	return n
}

type TokenResponse struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	UserID       string
	OpenID       string
	// ExpiresIn and ReExpiresIn are lifetimes in seconds of the access and
	// refresh tokens.
	ExpiresIn   int64
	ReExpiresIn int64
	AuthStart   string
	ReceivedAt  time.Time
	Raw         map[string]any
}

// Token converts the response to an oauth2.Token. The raw gateway fields
// are available through Extra.
func (t *TokenResponse) Token() *oauth2.Token {
	tk := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}
	if t.ExpiresIn > 0 {
		tk.Expiry = t.ReceivedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return tk.WithExtra(t.Raw)
}

// ParseTokenResponse decodes the reply to a token or refresh request.
func ParseTokenResponse(cfg Config, body []byte) (*TokenResponse, error) {
	cfg = cfg.withDefaults()
	env, err := parseResponse(cfg, body, RootOAuthToken)
	if err != nil {
		return nil, err
	}
	f := env.Fields
	tr := &TokenResponse{
		AccessToken:  stringField(f, "access_token"),
		TokenType:    stringField(f, "token_type"),
		RefreshToken: stringField(f, "refresh_token"),
		UserID:       stringField(f, "user_id"),
		OpenID:       stringField(f, "open_id"),
		ExpiresIn:    intField(f, "expires_in"),
		ReExpiresIn:  intField(f, "re_expires_in"),
		AuthStart:    stringField(f, "auth_start"),
		ReceivedAt:   cfg.Clock(),
		Raw:          f,
	}
	if tr.AccessToken == "" {
		return nil, &DecodeError{Body: body, Err: errors.New("no access_token in response")}
	}
	if tr.TokenType == "" {
		tr.TokenType = "Bearer"
	}
	return tr, nil
}

// ParseProfileResponse decodes the reply to a profile request.
func ParseProfileResponse(cfg Config, body []byte) (*UserProfile, error) {
	cfg = cfg.withDefaults()
	env, err := parseResponse(cfg, body, RootUserInfoShare)
	if err != nil {
		return nil, err
	}
	return MapUserProfile(env.Fields), nil
}
