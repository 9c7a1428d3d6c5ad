package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeakPassword(t *testing.T) {
	cases := map[string]bool{
		"abcdefghij":  false,
		"abcdefghi1":  false,
		"abcdefghi½":  false,
		"abcdefgh²³":  false,
		"abcdefghiⅫ":  false,
		"пароль12345": false,
		"abcdefghi":   true,
		"abcdefghi!":  true,
		"abcdefghi ":  true,
		"abcdefghi\t": true,
		"abcdefgh i":  true,
	}
	for password, weak := range cases {
		assert.Equal(t, weak, weakPassword(password), "password %q", password)
	}
}
