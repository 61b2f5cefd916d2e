package alipay

import (
	"errors"
	"fmt"
)

var (
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrMissingSign       = errors.New("missing sign")
	ErrMissingKey        = errors.New("missing key material")
)

// TransportError is a network or HTTP level failure reported by the
// transport collaborator.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("alipay: transport: http status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("alipay: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the gateway body was not a well formed envelope.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("alipay: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProviderError is a well formed error envelope returned by the gateway.
type ProviderError struct {
	Code    string
	Message string
	Msg     string
	SubCode string
}

func (e *ProviderError) Error() string {
	if e.SubCode != "" {
		return fmt.Sprintf("alipay: error code: %s (%s), msg: %s", e.Code, e.SubCode, e.Message)
	}
	return fmt.Sprintf("alipay: error code: %s, msg: %s", e.Code, e.Message)
}

type KeyError struct {
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("alipay: key: %v", e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("alipay: signature: %v", e.Err)
}

func (e *SignatureError) Unwrap() error { return e.Err }
