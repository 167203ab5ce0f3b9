package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := hashPassword("s3cret-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"))
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := hashPassword("same")
	require.NoError(t, err)
	b, err := hashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := hashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, verifyPassword("correct horse", hash))
	assert.False(t, verifyPassword("wrong horse", hash))
	assert.False(t, verifyPassword("", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3$c2FsdA$aGFzaA",
		"$argon2id$v=19$x=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
	}
	for _, hash := range tests {
		assert.False(t, verifyPassword("anything", hash), hash)
	}
}

func TestParseParam(t *testing.T) {
	v, err := parseParam("m=65536", "m=")
	require.NoError(t, err)
	assert.Equal(t, 65536, v)

	_, err = parseParam("t=3", "m=")
	assert.Error(t, err)

	_, err = parseParam("m=abc", "m=")
	assert.Error(t, err)
}
