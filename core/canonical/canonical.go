// ABOUTME: URL canonicalization and content hashing for duplicate detection
// ABOUTME: Strips fragments and tracking parameters, then derives a stable hex identifier

package canonical

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
)

// trackingPrefixes are matched case-insensitively against parameter names
var trackingPrefixes = []string{"utm_", "mc_", "pk_", "hsa_", "_hs"}

// trackingNames are exact (case-insensitive) tracking parameter names
var trackingNames = map[string]struct{}{
	"fbclid":            {},
	"gclid":             {},
	"dclid":             {},
	"msclkid":           {},
	"igshid":            {},
	"yclid":             {},
	"twclid":            {},
	"li_fat_id":         {},
	"trk":               {},
	"trkinfo":           {},
	"trackingid":        {},
	"refid":             {},
	"ref":               {},
	"ref_src":           {},
	"ref_url":           {},
	"si":                {},
	"s_cid":             {},
	"_ga":               {},
	"_gl":               {},
	"mkt_tok":           {},
	"rcm":               {},
	"originalsubdomain": {},
}

// IsTrackingParam reports whether a query parameter name is tracking noise
func IsTrackingParam(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := trackingNames[lower]; ok {
		return true
	}
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Canonicalize removes the fragment and tracking parameters from raw.
// Remaining parameters keep their order and encoding. Input that does not
// parse as an absolute URL is returned unchanged.
func Canonicalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		kept := make([]string, 0)
		for _, pair := range strings.Split(u.RawQuery, "&") {
			if pair == "" {
				continue
			}
			name := pair
			if i := strings.IndexByte(pair, '='); i >= 0 {
				name = pair[:i]
			}
			if decoded, err := url.QueryUnescape(name); err == nil {
				name = decoded
			}
			if IsTrackingParam(name) {
				continue
			}
			kept = append(kept, pair)
		}
		u.RawQuery = strings.Join(kept, "&")
	}
	u.ForceQuery = false

	return u.String()
}

// Hasher derives content identifiers. Digest is the cryptographic path;
// when it is nil or fails the FNV-1a fallback is used.
type Hasher struct {
	Digest func(data []byte) ([]byte, error)
}

// DefaultHasher uses SHA-1
var DefaultHasher = Hasher{Digest: sha1Digest}

func sha1Digest(data []byte) ([]byte, error) {
	sum := sha1.Sum(data)
	return sum[:], nil
}

// Hash returns the lowercase hex identifier of a canonical URL
func (h Hasher) Hash(canonicalURL string) string {
	data := []byte(canonicalURL)
	if h.Digest != nil {
		if sum, err := h.Digest(data); err == nil && len(sum) > 0 {
			return hex.EncodeToString(sum)
		}
	}
	return fallbackHash(data)
}

// fallbackHash is a 32-bit FNV-1a hash rendered as 8 hex characters
func fallbackHash(data []byte) string {
	f := fnv.New32a()
	_, _ = f.Write(data)
	return fmt.Sprintf("%08x", f.Sum32())
}

// Hash hashes a canonical URL with the default hasher
func Hash(canonicalURL string) string {
	return DefaultHasher.Hash(canonicalURL)
}

// ContentID canonicalizes raw and hashes the result
func ContentID(raw string) string {
	return Hash(Canonicalize(raw))
}
