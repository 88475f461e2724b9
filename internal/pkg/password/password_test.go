package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Format(t *testing.T) {
	stored, err := Hash("password123")
	require.NoError(t, err)

	parts := strings.SplitN(stored, ".", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], keyLen*2)  // hex 编码的派生密钥
	assert.Len(t, parts[1], saltLen*2) // hex 编码的盐
}

func TestHash_UniqueSalt(t *testing.T) {
	first, err := Hash("password123")
	require.NoError(t, err)

	second, err := Hash("password123")
	require.NoError(t, err)

	// 盐随机，同一密码两次哈希结果不同
	assert.NotEqual(t, first, second)
}

func TestVerify_Roundtrip(t *testing.T) {
	stored, err := Hash("correct-horse-battery")
	require.NoError(t, err)

	assert.True(t, Verify("correct-horse-battery", stored))
	assert.False(t, Verify("wrong-password", stored))
}

func TestVerify_MalformedStored(t *testing.T) {
	cases := []string{
		"",
		"nodot",
		"not-hex.cafebabe",
		"deadbeef.not-hex",
		"deadbeef.",
	}

	for _, stored := range cases {
		assert.False(t, Verify("password123", stored), "stored=%q", stored)
	}
}

func TestRandom(t *testing.T) {
	first, err := Random()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "oauth-"))

	second, err := Random()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
