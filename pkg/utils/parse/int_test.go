package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntOrZero(t *testing.T) {
	assert.Equal(t, 42, IntOrZero(" 42 "))
	assert.Equal(t, 0, IntOrZero("abc"))
	assert.Equal(t, -3, IntOrZero("-3"))
}

func TestIntOr(t *testing.T) {
	assert.Equal(t, 12, IntOr("12", 5))
	assert.Equal(t, 5, IntOr("", 5))
	assert.Equal(t, 5, IntOr("twelve", 5))
	assert.Equal(t, 0, IntOr("0", 5))
}
