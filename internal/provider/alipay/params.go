package alipay

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CanonicalMode selects which bookkeeping fields are left out of the
// signed content.
type CanonicalMode int

const (
	// SignMode drops only "sign".
	SignMode CanonicalMode = iota
	// VerifyMode drops both "sign" and "sign_type".
	VerifyMode
)

const (
	fieldSign     = "sign"
	fieldSignType = "sign_type"

	fileFieldPrefix = "@"
)

// Params is a flat gateway parameter set.
type Params map[string]string

// ParamsFrom converts loosely typed business parameters. nil values and
// non-scalar values (slices, maps, structs) never reach the wire and are
// dropped here.
func ParamsFrom(m map[string]any) Params {
	p := make(Params, len(m))
	for k, v := range m {
		s, ok := scalarString(v)
		if !ok {
			continue
		}
		p[k] = s
	}
	return p
}

func scalarString(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// signable reports whether a field takes part in the signed content.
func signable(k, v string, mode CanonicalMode) bool {
	if v == "" || strings.HasPrefix(v, fileFieldPrefix) {
		return false
	}
	switch k {
	case fieldSign:
		return false
	case fieldSignType:
		return mode != VerifyMode
	}
	return true
}

// SortedKeys returns the signable keys in ascending order.
func (p Params) SortedKeys(mode CanonicalMode) []string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if signable(k, v, mode) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Canonical returns the "k1=v1&k2=v2" string the RSA signature is
// computed over.
func (p Params) Canonical(mode CanonicalMode) string {
	var sb strings.Builder
	for i, k := range p.SortedKeys(mode) {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(p[k])
	}
	return sb.String()
}

// Concat returns "k1v1k2v2", the body wrapped by the shared secret in
// keyed-hash signing.
func (p Params) Concat(mode CanonicalMode) string {
	var sb strings.Builder
	for _, k := range p.SortedKeys(mode) {
		sb.WriteString(k)
		sb.WriteString(p[k])
	}
	return sb.String()
}

// merge copies extra into a fresh set and then lays base over it, so a
// base field always wins a key collision.
func merge(extra, base Params) Params {
	out := make(Params, len(extra)+len(base)+1)
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range base {
		out[k] = v
	}
	return out
}
