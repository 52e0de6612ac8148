package inter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseAmount verifies decimal token strings are converted to exact wei values.
func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1000000000000000000"},
		{"2.3", "2300000000000000000"},
		{"0.001", "1000000000000000"},
		{" 12 ", "12000000000000000000"},
		{"0.000000000000000001", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

// TestParseAmount_rejects covers malformed, negative and over-precise input.
func TestParseAmount_rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "0.0000000000000000001"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestWeiToFloat(t *testing.T) {
	assert.Equal(t, 0.0, WeiToFloat(nil))
	assert.Equal(t, 2.3, WeiToFloat(big.NewInt(2300000000000000000)))
	assert.Equal(t, 12.0, WeiToFloat(HoneyToWei(12)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2.30", FormatAmount(big.NewInt(2300000000000000000), 2))
	assert.Equal(t, "0.0000", FormatAmount(nil, 4))
}

// TestCopyAmount ensures copies never alias the source value.
func TestCopyAmount(t *testing.T) {
	src := big.NewInt(5)
	cp := CopyAmount(src)
	cp.SetInt64(7)
	assert.Equal(t, int64(5), src.Int64())
	assert.Equal(t, 0, CopyAmount(nil).Sign())
}
