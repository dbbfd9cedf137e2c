package canon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", `"hello"`},
		{"bool_true", true, "true"},
		{"bool_false", false, "false"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float_fraction", 0.5, "0.5"},
		{"float_integral", 4.0, "4"},
		{"float_negative", -1.25, "-1.25"},
		{"float_zero", 0.0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalIntegralFloatMatchesInt(t *testing.T) {
	// 4.0 and 4 must serialize identically so replay comparison does
	// not depend on which arrived from the database driver.
	f, err := Marshal(4.0)
	require.NoError(t, err)
	i, err := Marshal(int64(4))
	require.NoError(t, err)
	assert.Equal(t, string(i), string(f))
}

func TestMarshalObjectSortsKeys(t *testing.T) {
	got, err := Marshal(map[string]any{
		"zebra": 1,
		"apple": 2,
		"A":     3,
	})
	require.NoError(t, err)
	// UTF-16 order: uppercase before lowercase.
	assert.Equal(t, `{"A":3,"apple":2,"zebra":1}`, string(got))
}

func TestMarshalNested(t *testing.T) {
	got, err := Marshal(map[string]any{
		"trace": []any{
			map[string]any{"seq": int64(1), "re": 4.0, "im": 1.0},
		},
		"name": "demo",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"demo","trace":[{"im":1,"re":4,"seq":1}]}`, string(got))
}

func TestMarshalNoHTMLEscaping(t *testing.T) {
	got, err := Marshal("a < b && c > d")
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(got))
}

func TestMarshalEscapesControls(t *testing.T) {
	got, err := Marshal("line1\nline2\ttab\x01")
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2\ttab\u0001"`, string(got))
}

func TestMarshalRejectsNull(t *testing.T) {
	_, err := Marshal(nil)
	require.Error(t, err)

	_, err = Marshal(map[string]any{"k": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `object["k"]`)
}

func TestMarshalRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Marshal(f)
		require.Error(t, err, "value %v", f)
	}
}

func TestMarshalRejectsUnsupportedType(t *testing.T) {
	_, err := Marshal(struct{}{})
	require.Error(t, err)
}

func TestCompareUTF16SurrogateOrder(t *testing.T) {
	// U+FF61 (halfwidth ideographic full stop) is a single code unit
	// 0xFF61; U+1D306 encodes as surrogates 0xD834 0xDF06. UTF-16
	// order puts the surrogate pair first, UTF-8 byte order would not.
	assert.Equal(t, -1, compareUTF16("\U0001D306", "｡"))
	assert.Equal(t, 1, compareUTF16("｡", "\U0001D306"))
	assert.Equal(t, 0, compareUTF16("abc", "abc"))
}
