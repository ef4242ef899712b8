package enrichment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymousFingerprint(t *testing.T) {
	a := AnonymousFingerprint("10.0.0.1", "Mozilla/5.0")
	b := AnonymousFingerprint("10.0.0.1", "Mozilla/5.0")
	c := AnonymousFingerprint("10.0.0.2", "Mozilla/5.0")

	assert.Equal(t, a, b, "fingerprint is stable")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "anon_"))
	assert.Len(t, a, len("anon_")+16)
}

func TestAnonymousFingerprint_UnknownDefaults(t *testing.T) {
	assert.Equal(t, AnonymousFingerprint("unknown", "unknown"), AnonymousFingerprint("", "  "))
}

func TestLicenseIdentity(t *testing.T) {
	id := LicenseIdentity("  KEY-123 ")

	assert.Equal(t, LicenseIdentity("KEY-123"), id)
	assert.True(t, strings.HasPrefix(id, "lic_"))
	assert.NotContains(t, id, "KEY-123")
}
