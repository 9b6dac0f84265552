package printf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgListTypedFetches(t *testing.T) {
	cursor := NewArgList(7, int32(-3), 1<<40, uint64(9), 2.5, uintptr(0xbeef), "str")

	v, err := cursor.FetchInt()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	v, err = cursor.FetchInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-3), v)

	l, err := cursor.FetchLong()
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), l)

	u, err := cursor.FetchUsize()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), u)

	d, err := cursor.FetchDouble()
	require.NoError(t, err)
	assert.Equal(t, 2.5, d)

	p, err := cursor.FetchPtr()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xbeef), p)

	s, err := cursor.FetchString()
	require.NoError(t, err)
	assert.Equal(t, "str", string(s))

	assert.Equal(t, 0, cursor.Remaining())
}

func TestArgListExhaustion(t *testing.T) {
	cursor := NewArgList(1)
	_, err := cursor.FetchInt()
	require.NoError(t, err)

	_, err = cursor.FetchInt()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")
}

func TestArgListMismatch(t *testing.T) {
	cursor := NewArgList("not a number")
	_, err := cursor.FetchDouble()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wanted double")
}

func TestArgListStringForms(t *testing.T) {
	tests := []struct {
		name     string
		arg      any
		expected []byte
	}{
		{"plain string", "world", []byte("world")},
		{"byte slice", []byte("bytes"), []byte("bytes")},
		{"embedded nul truncates", "wor\x00ld", []byte("wor")},
		{"null pointer", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := NewArgList(tt.arg)
			s, err := cursor.FetchString()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestArgListNilPointer(t *testing.T) {
	cursor := NewArgList(nil)
	p, err := cursor.FetchPtr()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p)
}

func TestFetchSignedNarrowing(t *testing.T) {
	tests := []struct {
		name     string
		length   Length
		arg      any
		expected int64
	}{
		{"char wraps", Length_Char, int(0xFFFFFF83), -125},
		{"char small positive", Length_Char, 42, 42},
		{"short wraps", Length_Short, int(0x18001), -32767},
		{"int passthrough", Length_Int, -23125, -23125},
		{"long", Length_Long, int64(1) << 40, 1 << 40},
		{"long long", Length_LongLong, int64(-9), -9},
		{"usize reinterprets", Length_Usize, uint64(5), 5},
		{"isize", Length_Isize, -5, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := fetchSigned(NewArgList(tt.arg), tt.length)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestFetchUnsignedNarrowing(t *testing.T) {
	tests := []struct {
		name     string
		length   Length
		arg      any
		expected uint64
	}{
		{"char keeps low byte", Length_Char, int(0x183), 131},
		{"short keeps low word", Length_Short, int(0x18001), 32769},
		{"int wraps negative", Length_Int, -1, 4294967295},
		{"long wraps negative", Length_Long, -1, 18446744073709551615},
		{"usize passthrough", Length_Usize, uint64(7), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := fetchUnsigned(NewArgList(tt.arg), tt.length)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
