package alipay

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/mitchellh/go-homedir"
)

const (
	pemTypeRSAPrivateKey = "RSA PRIVATE KEY"
	pemTypePublicKey     = "PUBLIC KEY"

	pemLineLength = 64
)

var pemBegin = []byte("-----BEGIN")

func isKeyPath(s string) bool {
	return strings.HasSuffix(s, ".pem") || strings.HasPrefix(s, "~/")
}

// readKeyMaterial moves the key content (inline or from a file) into a
// locked buffer. The caller owns the buffer and must Destroy it.
func readKeyMaterial(src string) (*memguard.LockedBuffer, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, &KeyError{Err: ErrMissingKey}
	}
	if !isKeyPath(src) {
		return memguard.NewBufferFromBytes([]byte(src)), nil
	}
	path, err := homedir.Expand(src)
	if err != nil {
		return nil, &KeyError{Err: err}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &KeyError{Err: err}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, &KeyError{Err: fmt.Errorf("%s: %w", path, ErrMissingKey)}
	}
	return memguard.NewBufferFromBytes(b), nil
}

// wrapPEM returns b unchanged when it already carries PEM armour,
// otherwise it treats b as a bare base64 body and adds the headers.
// The second result reports whether a new slice was allocated.
func wrapPEM(b []byte, blockType string) ([]byte, bool) {
	if bytes.Contains(b, pemBegin) {
		return b, false
	}
	body := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n':
		default:
			body = append(body, c)
		}
	}
	defer memguard.WipeBytes(body)

	var buf bytes.Buffer
	buf.Grow(len(body) + len(body)/pemLineLength + 2*len(blockType) + 40)
	buf.WriteString("-----BEGIN " + blockType + "-----\n")
	for len(body) > 0 {
		n := min(pemLineLength, len(body))
		buf.Write(body[:n])
		buf.WriteByte('\n')
		body = body[n:]
	}
	buf.WriteString("-----END " + blockType + "-----\n")
	return buf.Bytes(), true
}

func parseRSAPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS1PrivateKey(der)
	if err == nil {
		return key, nil
	}
	k, err8 := x509.ParsePKCS8PrivateKey(der)
	if err8 != nil {
		return nil, err
	}
	rk, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("pkcs8 key is %T, not rsa", k)
	}
	return rk, nil
}

func zeroPrivateKey(key *rsa.PrivateKey) {
	if key.D != nil {
		key.D.SetInt64(0)
	}
	for _, p := range key.Primes {
		p.SetInt64(0)
	}
	if key.Precomputed.Dp != nil {
		key.Precomputed.Dp.SetInt64(0)
	}
	if key.Precomputed.Dq != nil {
		key.Precomputed.Dq.SetInt64(0)
	}
	if key.Precomputed.Qinv != nil {
		key.Precomputed.Qinv.SetInt64(0)
	}
	for i := range key.Precomputed.CRTValues {
		v := &key.Precomputed.CRTValues[i]
		for _, n := range []*big.Int{v.Exp, v.Coeff, v.R} {
			if n != nil {
				n.SetInt64(0)
			}
		}
	}
}

// withPrivateKey parses the RSA private key for the duration of fn only.
// The key material and DER bytes are wiped when it returns, including when
// fn fails or panics. Clearing the parsed big integers is best-effort: the
// copies crypto/rsa keeps internally are out of reach.
func withPrivateKey(src string, fn func(*rsa.PrivateKey) error) error {
	lb, err := readKeyMaterial(src)
	if err != nil {
		return err
	}
	defer lb.Destroy()

	pemBytes, allocated := wrapPEM(lb.Bytes(), pemTypeRSAPrivateKey)
	if allocated {
		defer memguard.WipeBytes(pemBytes)
	}

	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return &KeyError{Err: errors.New("private key: no pem block found")}
	}
	defer memguard.WipeBytes(block.Bytes)

	key, err := parseRSAPrivateKey(block.Bytes)
	if err != nil {
		return &KeyError{Err: fmt.Errorf("private key: %w", err)}
	}
	defer zeroPrivateKey(key)

	return fn(key)
}

// loadPublicKey parses a PKIX (or PKCS#1) RSA public key.
func loadPublicKey(src string) (*rsa.PublicKey, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, &KeyError{Err: ErrMissingKey}
	}
	var raw []byte
	if isKeyPath(src) {
		path, err := homedir.Expand(src)
		if err != nil {
			return nil, &KeyError{Err: err}
		}
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, &KeyError{Err: err}
		}
	} else {
		raw = []byte(src)
	}
	pemBytes, _ := wrapPEM(raw, pemTypePublicKey)
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, &KeyError{Err: errors.New("public key: no pem block found")}
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		rk, err1 := x509.ParsePKCS1PublicKey(block.Bytes)
		if err1 != nil {
			return nil, &KeyError{Err: fmt.Errorf("public key: %w", err)}
		}
		return rk, nil
	}
	rk, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, &KeyError{Err: fmt.Errorf("public key is %T, not rsa", pub)}
	}
	return rk, nil
}
