package printf

import (
	"fmt"
	"strings"
)

// Flags is the bitset built from the flag characters that may follow
// the `%` sign in a conversion.  Duplicated flag characters are
// idempotent.
type Flags uint8

const (
	// `-`: left-align the converted value within the field width
	Flag_LeftAlign Flags = 1 << iota
	// `+`: prepend a plus on non-negative signed conversions
	Flag_PrependPlus
	// ` `: prepend a space on non-negative signed conversions.
	// Ignored when Flag_PrependPlus is also set.
	Flag_PrependSpace
	// `0`: pad numeric conversions with zeros instead of spaces
	Flag_PrependZero
	// `'`: thousands grouping.  Parsed and carried, never realized
	// in output since grouping depends on a locale.
	Flag_ThousandsGrouping
	// `#`: alternate form.  `0` prefix for octal, `0x` for hex, a
	// retained decimal point for floats at precision zero.
	Flag_AlternateForm
)

// Has returns true if all bits in `o` are set in `f`
func (f Flags) Has(o Flags) bool { return f&o == o }

func (f Flags) String() string {
	var s strings.Builder
	for _, it := range []struct {
		flag Flags
		ch   byte
	}{
		{Flag_LeftAlign, '-'},
		{Flag_PrependPlus, '+'},
		{Flag_PrependSpace, ' '},
		{Flag_PrependZero, '0'},
		{Flag_ThousandsGrouping, '\''},
		{Flag_AlternateForm, '#'},
	} {
		if f.Has(it.flag) {
			s.WriteByte(it.ch)
		}
	}
	return s.String()
}

// Length is the width-class of an integer argument, as selected by
// the length modifier in the template.  It decides both how the
// argument is pulled from the cursor and how its value is narrowed
// before rendering: `%hhd` handed the int 0xFFFFFF83 must come out as
// -125, not as the widened carrier value.
type Length int

const (
	Length_Int Length = iota
	// `hh`
	Length_Char
	// `h`
	Length_Short
	// `l`
	Length_Long
	// `ll`
	Length_LongLong
	// `z`
	Length_Usize
	// `t`
	Length_Isize
)

func (l Length) String() string {
	return map[Length]string{
		Length_Int:      "int",
		Length_Char:     "char",
		Length_Short:    "short",
		Length_Long:     "long",
		Length_LongLong: "long long",
		Length_Usize:    "size_t",
		Length_Isize:    "ptrdiff_t",
	}[l]
}

// Precision distinguishes an unset precision from an explicit zero.
// `%.0d` with the value 0 emits no digits at all, while a plain `%d`
// emits one.
type Precision struct {
	set   bool
	value int
}

func NewPrecision(v int) Precision {
	return Precision{set: true, value: v}
}

func (p Precision) IsSet() bool { return p.set }

// Or returns the precision value, or `def` when unset
func (p Precision) Or(def int) int {
	if p.set {
		return p.value
	}
	return def
}

func (p Precision) String() string {
	if !p.set {
		return "none"
	}
	return fmt.Sprintf("%d", p.value)
}

// DoubleFormat selects among the floating point conversions.  The
// Auto and Hex pairs are recognized but degrade to the Normal pair in
// output.
type DoubleFormat int

const (
	// `f`
	DoubleFormat_Normal DoubleFormat = iota
	// `F`
	DoubleFormat_UpperNormal
	// `e`
	DoubleFormat_Scientific
	// `E`
	DoubleFormat_UpperScientific
	// `g`
	DoubleFormat_Auto
	// `G`
	DoubleFormat_UpperAuto
	// `a`
	DoubleFormat_Hex
	// `A`
	DoubleFormat_UpperHex
)

// IsUpper returns true for the uppercase half of the conversion pairs
func (f DoubleFormat) IsUpper() bool {
	switch f {
	case DoubleFormat_UpperNormal, DoubleFormat_UpperScientific,
		DoubleFormat_UpperAuto, DoubleFormat_UpperHex:
		return true
	}
	return false
}

// SetUpper moves the format to the uppercase or lowercase member of
// its pair
func (f DoubleFormat) SetUpper(upper bool) DoubleFormat {
	lower := f
	if f.IsUpper() {
		lower = f - 1
	}
	if upper {
		return lower + 1
	}
	return lower
}

func (f DoubleFormat) String() string {
	return map[DoubleFormat]string{
		DoubleFormat_Normal:          "f",
		DoubleFormat_UpperNormal:     "F",
		DoubleFormat_Scientific:      "e",
		DoubleFormat_UpperScientific: "E",
		DoubleFormat_Auto:            "g",
		DoubleFormat_UpperAuto:       "G",
		DoubleFormat_Hex:             "a",
		DoubleFormat_UpperHex:        "A",
	}[f]
}

// Specifier is the tagged payload of a directive: either a literal
// run of template bytes or one conversion with its already-fetched
// argument.
type Specifier interface {
	Type() string
	specifier()
}

// Literal Specifier

// Literal is a run of template bytes between conversions, output
// verbatim.  It consumes no variadic arguments and may be empty.
type Literal struct {
	Data []byte
}

func NewLiteral(data []byte) Literal { return Literal{Data: data} }

func (s Literal) Type() string { return "literal" }
func (s Literal) specifier()   {}

// Percent Specifier

// Percent is the `%%` conversion, a single literal percent sign.
type Percent struct{}

func (s Percent) Type() string { return "percent" }
func (s Percent) specifier()   {}

// SignedInt Specifier

// SignedInt carries a `d`/`i` argument widened to 64 bits, together
// with the width-class it was pulled as.
type SignedInt struct {
	Value  int64
	Length Length
}

func (s SignedInt) Type() string { return "int" }
func (s SignedInt) specifier()   {}

// IsNegative reports the sign of the original, pre-widening value
func (s SignedInt) IsNegative() bool { return s.Value < 0 }

// UnsignedInt Specifier

// UnsignedInt carries a `u` argument widened to 64 bits, together
// with the width-class it was pulled as.
type UnsignedInt struct {
	Value  uint64
	Length Length
}

func (s UnsignedInt) Type() string { return "uint" }
func (s UnsignedInt) specifier()   {}

// Octal, Hex and UpperHex reuse the unsigned carrier and only change
// the rendering base.

type Octal struct{ UnsignedInt }

func (s Octal) Type() string { return "octal" }

type Hex struct{ UnsignedInt }

func (s Hex) Type() string { return "hex" }

type UpperHex struct{ UnsignedInt }

func (s UpperHex) Type() string { return "upper hex" }

// Double Specifier

// Double carries any floating point argument.  Floats are always
// pulled 64 bits wide regardless of the length modifier.
type Double struct {
	Value  float64
	Format DoubleFormat
}

func (s Double) Type() string { return "double" }
func (s Double) specifier()   {}

// Char Specifier

// Char is a `c` conversion.  The ABI passes it as an int; only the
// low byte is kept.
type Char struct {
	Value byte
}

func (s Char) Type() string { return "char" }
func (s Char) specifier()   {}

// String Specifier

// String is an `s` conversion.  Data holds the bytes up to but not
// including the terminating NUL; a nil Data marks a NULL pointer
// argument, which renders as `(null)`.
type String struct {
	Data []byte
}

func (s String) Type() string { return "string" }
func (s String) specifier()   {}

// Pointer Specifier

// Pointer is a `p` conversion, an opaque address.
type Pointer struct {
	Value uint64
}

func (s Pointer) Type() string { return "pointer" }
func (s Pointer) specifier()   {}

// WriteBytesWritten Specifier

// WriteBytesWritten is the `n` conversion.  Count is the number of
// bytes emitted before this directive and Dest the caller-supplied
// address.  The engine never writes through Dest; a sink may elect
// to.
type WriteBytesWritten struct {
	Count int
	Dest  uint64
}

func (s WriteBytesWritten) Type() string { return "write bytes written" }
func (s WriteBytesWritten) specifier()   {}

// Directive is the unit handed from the parser to the sink: one
// parsed conversion, or one literal byte run, with the flags, width
// and precision that apply to it.
type Directive struct {
	Flags     Flags
	Width     int
	Precision Precision
	Specifier Specifier

	// rg spans the originating `%`-run within the template, or the
	// literal bytes themselves for a Literal directive
	rg Range
}

// NewDirective builds a directive with no flags, width or precision,
// which is how literal runs and `%%` travel to the sink.
func NewDirective(spec Specifier, rg Range) Directive {
	return Directive{Specifier: spec, rg: rg}
}

func (d Directive) Range() Range { return d.rg }

func (d Directive) String() string {
	return fmt.Sprintf("Directive(%s, flags=%q, width=%d, precision=%s)",
		d.Specifier.Type(), d.Flags.String(), d.Width, d.Precision)
}
