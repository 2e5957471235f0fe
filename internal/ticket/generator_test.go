package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNumber_Format(t *testing.T) {
	now := time.Now()

	n := GenerateNumber(now)
	assert.True(t, strings.HasPrefix(n, "TKT-"))

	parts := strings.Split(n, "-")
	assert.Equal(t, 3, len(parts))
	//末尾は乱数hex8桁
	assert.Equal(t, 8, len(parts[2]))
}

func TestGenerateNumber_Unique(t *testing.T) {
	now := time.Now()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := GenerateNumber(now)
		assert.False(t, seen[n], "duplicate number %s", n)
		seen[n] = true
	}
}

func TestGenerateQRCode_LengthCap(t *testing.T) {
	now := time.Now()

	code, err := GenerateQRCode("TKT-1756600000000-deadbeef", 10, 2, now)
	assert.NoError(t, err)
	assert.NotEmpty(t, code)
	//保存列に収まるよう常に150文字以内
	assert.LessOrEqual(t, len(code), 150)
}

func TestGenerateQRCode_DeterministicForSameInputs(t *testing.T) {
	now := time.Unix(1756600000, 0)

	a, err := GenerateQRCode("TKT-1-aaaa", 10, 2, now)
	assert.NoError(t, err)
	b, err := GenerateQRCode("TKT-1-aaaa", 10, 2, now)
	assert.NoError(t, err)
	//完全一致照合の前提: 同じ入力からは同じトークン
	assert.Equal(t, a, b)
}
