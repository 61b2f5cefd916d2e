package alipay

import (
	"crypto"
	"crypto/md5"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

// HashFunc builds the digest used by keyed-hash signing.
type HashFunc func() hash.Hash

var hashes = map[string]HashFunc{
	"MD5":      md5.New,
	"SHA1":     sha1.New,
	"SHA256":   sha256.New,
	"SHA3-256": sha3.New256,
}

// RegisterHash makes a keyed-hash variant selectable by sign_type. It is
// not safe to call concurrently with signing and is meant for init time.
func RegisterHash(name string, h HashFunc) {
	hashes[strings.ToUpper(name)] = h
}

func LookupHash(name string) (HashFunc, error) {
	h, ok := hashes[strings.ToUpper(name)]
	if !ok {
		return nil, &SignatureError{Err: fmt.Errorf("unsupported sign type: %s", name)}
	}
	return h, nil
}

// KeyedHashSign computes upper(hex(H(secret + k1v1k2v2... + secret))).
func KeyedHashSign(h HashFunc, secret string, p Params, mode CanonicalMode) string {
	d := h()
	d.Write([]byte(secret))
	d.Write([]byte(p.Concat(mode)))
	d.Write([]byte(secret))
	return strings.ToUpper(hex.EncodeToString(d.Sum(nil)))
}

// RSASign signs content with RSA PKCS#1 v1.5 over SHA256 and returns it
// base64 encoded. keySrc is PEM content, a bare base64 body or a path.
func RSASign(keySrc, content string) (string, error) {
	var sig []byte
	err := withPrivateKey(keySrc, func(key *rsa.PrivateKey) error {
		digest := sha256.Sum256([]byte(content))
		var err error
		sig, err = rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
		if err != nil {
			return &SignatureError{Err: err}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// RSAVerify checks a base64 RSA2 signature over content.
func RSAVerify(pubSrc, content, sign string) error {
	pub, err := loadPublicKey(pubSrc)
	if err != nil {
		return err
	}
	sig, err := base64.StdEncoding.DecodeString(sign)
	if err != nil {
		return &SignatureError{Err: fmt.Errorf("decode sign: %w", err)}
	}
	digest := sha256.Sum256([]byte(content))
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig); err != nil {
		return &SignatureError{Err: ErrSignatureMismatch}
	}
	return nil
}

// Sign computes the signature for p under the scheme selected by cfg.
// p must already contain sign_type; it is part of the signed content.
func Sign(cfg Config, p Params) (string, error) {
	cfg = cfg.withDefaults()
	switch cfg.Scheme() {
	case AsymmetricRSA:
		return RSASign(cfg.Secret, p.Canonical(SignMode))
	default:
		h, err := LookupHash(cfg.SignType)
		if err != nil {
			return "", err
		}
		if cfg.Secret == "" {
			return "", &KeyError{Err: ErrMissingKey}
		}
		return KeyedHashSign(h, cfg.Secret, p, SignMode), nil
	}
}

// Verify checks the "sign" field of p, for example on a gateway
// notification. Verification leaves both sign and sign_type out of the
// canonical content. RSA signatures are checked with AlipayPublicKey,
// keyed hashes are recomputed with the shared secret.
func Verify(cfg Config, p Params) error {
	cfg = cfg.withDefaults()
	sign := p[fieldSign]
	if sign == "" {
		return &SignatureError{Err: ErrMissingSign}
	}
	switch cfg.Scheme() {
	case AsymmetricRSA:
		return RSAVerify(cfg.AlipayPublicKey, p.Canonical(VerifyMode), sign)
	default:
		h, err := LookupHash(cfg.SignType)
		if err != nil {
			return err
		}
		if cfg.Secret == "" {
			return &KeyError{Err: ErrMissingKey}
		}
		want := KeyedHashSign(h, cfg.Secret, p, VerifyMode)
		if subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToUpper(sign))) != 1 {
			return &SignatureError{Err: ErrSignatureMismatch}
		}
		return nil
	}
}
