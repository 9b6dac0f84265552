package printf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_String(t *testing.T) {
	tests := []struct {
		name     string
		flags    Flags
		expected string
	}{
		{"empty", 0, ""},
		{"single", Flag_LeftAlign, "-"},
		{"sign pair", Flag_PrependPlus | Flag_PrependSpace, "+ "},
		{"all", Flag_LeftAlign | Flag_PrependPlus | Flag_PrependSpace |
			Flag_PrependZero | Flag_ThousandsGrouping | Flag_AlternateForm, "-+ 0'#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.flags.String())
		})
	}
}

func TestFlags_Has(t *testing.T) {
	flags := Flag_LeftAlign | Flag_PrependZero
	assert.True(t, flags.Has(Flag_LeftAlign))
	assert.True(t, flags.Has(Flag_PrependZero))
	assert.True(t, flags.Has(Flag_LeftAlign|Flag_PrependZero))
	assert.False(t, flags.Has(Flag_PrependPlus))
	assert.False(t, flags.Has(Flag_LeftAlign|Flag_PrependPlus))
}

func TestPrecision(t *testing.T) {
	unset := Precision{}
	assert.False(t, unset.IsSet())
	assert.Equal(t, 6, unset.Or(6))
	assert.Equal(t, "none", unset.String())

	zero := NewPrecision(0)
	assert.True(t, zero.IsSet())
	assert.Equal(t, 0, zero.Or(6))
	assert.Equal(t, "0", zero.String())

	// an explicit zero must never fall back to the default
	assert.NotEqual(t, unset.Or(6), zero.Or(6))
}

func TestDoubleFormat_SetUpper(t *testing.T) {
	tests := []struct {
		name     string
		format   DoubleFormat
		upper    bool
		expected DoubleFormat
	}{
		{"normal to upper", DoubleFormat_Normal, true, DoubleFormat_UpperNormal},
		{"upper normal stays", DoubleFormat_UpperNormal, true, DoubleFormat_UpperNormal},
		{"upper normal lowers", DoubleFormat_UpperNormal, false, DoubleFormat_Normal},
		{"scientific to upper", DoubleFormat_Scientific, true, DoubleFormat_UpperScientific},
		{"auto lowers", DoubleFormat_UpperAuto, false, DoubleFormat_Auto},
		{"hex to upper", DoubleFormat_Hex, true, DoubleFormat_UpperHex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.SetUpper(tt.upper))
			assert.Equal(t, tt.upper, tt.format.SetUpper(tt.upper).IsUpper())
		})
	}
}

func TestRange_Contains(t *testing.T) {
	tests := []struct {
		name     string
		parent   Range
		other    Range
		expected bool
	}{
		{
			name:     "fully contained range",
			parent:   NewRange(0, 10),
			other:    NewRange(2, 8),
			expected: true,
		},
		{
			name:     "identical ranges",
			parent:   NewRange(5, 15),
			other:    NewRange(5, 15),
			expected: true,
		},
		{
			name:     "other overlaps start boundary",
			parent:   NewRange(5, 15),
			other:    NewRange(3, 8),
			expected: false,
		},
		{
			name:     "other overlaps end boundary",
			parent:   NewRange(5, 15),
			other:    NewRange(12, 18),
			expected: false,
		},
		{
			name:     "other completely encompasses parent",
			parent:   NewRange(5, 15),
			other:    NewRange(0, 20),
			expected: false,
		},
		{
			name:     "zero-length range in middle",
			parent:   NewRange(0, 10),
			other:    NewRange(5, 5),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.parent.Contains(tt.other))
		})
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "3", NewRange(3, 3).String())
	assert.Equal(t, "3..7", NewRange(3, 7).String())
}

func TestDirectiveString(t *testing.T) {
	d := Directive{
		Flags:     Flag_PrependZero,
		Width:     5,
		Precision: NewPrecision(2),
		Specifier: SignedInt{Value: 42, Length: Length_Int},
	}
	assert.Equal(t, `Directive(int, flags="0", width=5, precision=2)`, d.String())
}
