package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCode(t *testing.T) {
	for code, valid := range map[string]bool{
		"AB12CD":  true,
		"O0I1ZZ":  true,
		"ABCDEF":  true,
		"ab12cd":  false,
		"AB12C":   false,
		"AB12CDE": false,
		"AB-2CD":  false,
	} {
		assert.Equal(t, valid, IsValidCode(code), code)
	}
}
