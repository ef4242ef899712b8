// ABOUTME: Caller identity derivation for the AI quota ledger
// ABOUTME: Licensed callers are keyed by a digest of the key, others by an anonymous fingerprint

package enrichment

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const fingerprintLength = 16

// AnonymousFingerprint derives a stable identity from caller IP and user agent
func AnonymousFingerprint(clientIP, userAgent string) string {
	ip := strings.TrimSpace(clientIP)
	ua := strings.TrimSpace(userAgent)
	if ip == "" {
		ip = "unknown"
	}
	if ua == "" {
		ua = "unknown"
	}
	return "anon_" + shortDigest("anon|"+ip+"|"+ua)
}

// LicenseIdentity keys a licensed caller without storing the raw key
func LicenseIdentity(licenseKey string) string {
	return "lic_" + shortDigest(strings.TrimSpace(licenseKey))
}

func shortDigest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}
