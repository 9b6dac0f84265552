package printf

import (
	"bytes"
	"io"
	"math"
	"strconv"
)

// numBufSize fits the digit run of any 64-bit integer in any base,
// and the common float bodies.  Longer float bodies spill into an
// append-grown slice.
const numBufSize = 32

var (
	spacePad = bytes.Repeat([]byte{' '}, numBufSize)
	zeroPad  = bytes.Repeat([]byte{'0'}, numBufSize)
)

type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// renderDirective writes the textual realization of one directive
// into `w` and returns the number of bytes written.  The write-back
// directive is governed by the `render.reject_writeback` setting:
// rejected it errors, accepted it stays inert and writes nothing.
func renderDirective(w io.Writer, d Directive, cfg *Config) (int, error) {
	cw := &countingWriter{w: w}
	var err error
	switch s := d.Specifier.(type) {
	case Literal:
		err = writeAll(cw, s.Data)
	case Percent:
		err = writeAll(cw, []byte{'%'})
	case SignedInt:
		err = writeSigned(cw, d, s.Value)
	case UnsignedInt:
		err = writeUnsigned(cw, d, s.Value, 10, false)
	case Octal:
		err = writeUnsigned(cw, d, s.Value, 8, false)
	case Hex:
		err = writeUnsigned(cw, d, s.Value, 16, false)
	case UpperHex:
		err = writeUnsigned(cw, d, s.Value, 16, true)
	case Double:
		err = writeDouble(cw, d, s)
	case Char:
		// precision has no meaning for a single character
		stripped := d
		stripped.Precision = Precision{}
		err = writeText(cw, stripped, []byte{s.Value})
	case String:
		data := s.Data
		if data == nil {
			data = []byte(cfg.GetString("render.null_string"))
		}
		err = writeText(cw, d, data)
	case Pointer:
		err = writePointer(cw, d, s.Value)
	case WriteBytesWritten:
		if cfg.GetBool("render.reject_writeback") {
			return -1, &SinkError{Directive: d}
		}
	default:
		return -1, &SinkError{Directive: d}
	}
	if err != nil {
		return -1, err
	}
	return cw.n, nil
}

func writeAll(cw *countingWriter, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := cw.Write(b)
	return err
}

// padding emits `n` copies of the pad chunk's byte.  Negative and
// zero counts are no-ops, which is how fields narrower than their
// body fall through unpadded.
func padding(cw *countingWriter, n int, pad []byte) error {
	for n > 0 {
		chunk := n
		if chunk > len(pad) {
			chunk = len(pad)
		}
		if err := writeAll(cw, pad[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// writeNumber lays out prefix (sign and/or alternate-form), a run of
// precision zeros, and the digit body under the directive's width
// rules.  `zeroFillOK` says whether the `0` flag may turn the leading
// padding into zeros; when it does, the zeros go between the prefix
// and the digits so a sign or `0x` stays in front.
func writeNumber(cw *countingWriter, d Directive, prefix []byte, zeroExtend int, digits []byte, zeroFillOK bool) error {
	bodyLen := len(prefix) + zeroExtend + len(digits)
	switch {
	case d.Flags.Has(Flag_LeftAlign):
		if err := writeAll(cw, prefix); err != nil {
			return err
		}
		if err := padding(cw, zeroExtend, zeroPad); err != nil {
			return err
		}
		if err := writeAll(cw, digits); err != nil {
			return err
		}
		return padding(cw, d.Width-bodyLen, spacePad)
	case d.Flags.Has(Flag_PrependZero) && zeroFillOK:
		if err := writeAll(cw, prefix); err != nil {
			return err
		}
		fill := d.Width - len(prefix) - len(digits)
		if fill < zeroExtend {
			fill = zeroExtend
		}
		if err := padding(cw, fill, zeroPad); err != nil {
			return err
		}
		return writeAll(cw, digits)
	default:
		if err := padding(cw, d.Width-bodyLen, spacePad); err != nil {
			return err
		}
		if err := writeAll(cw, prefix); err != nil {
			return err
		}
		if err := padding(cw, zeroExtend, zeroPad); err != nil {
			return err
		}
		return writeAll(cw, digits)
	}
}

// signPrefix picks the sign byte for signed conversions: the minus
// always wins, then plus dominates space, then nothing
func signPrefix(flags Flags, negative bool, buf *[1]byte) []byte {
	switch {
	case negative:
		buf[0] = '-'
	case flags.Has(Flag_PrependPlus):
		buf[0] = '+'
	case flags.Has(Flag_PrependSpace):
		buf[0] = ' '
	default:
		return buf[:0]
	}
	return buf[:1]
}

func writeSigned(cw *countingWriter, d Directive, v int64) error {
	var (
		buf     [numBufSize]byte
		signBuf [1]byte
	)
	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = -mag
	}
	digits := strconv.AppendUint(buf[:0], mag, 10)

	zeroExtend := 0
	if d.Precision.IsSet() {
		prec := d.Precision.Or(0)
		// an explicit zero precision with a zero value emits no
		// digits at all
		if prec == 0 && v == 0 {
			digits = digits[:0]
		}
		if n := prec - len(digits); n > 0 {
			zeroExtend = n
		}
	}

	prefix := signPrefix(d.Flags, neg, &signBuf)
	// the `0` flag is ignored when an explicit precision is given
	return writeNumber(cw, d, prefix, zeroExtend, digits, !d.Precision.IsSet())
}

func writeUnsigned(cw *countingWriter, d Directive, v uint64, base int, upper bool) error {
	var buf [numBufSize]byte
	digits := strconv.AppendUint(buf[:0], v, base)
	if upper {
		upperHexDigits(digits)
	}

	zeroExtend := 0
	if d.Precision.IsSet() {
		prec := d.Precision.Or(0)
		if prec == 0 && v == 0 {
			digits = digits[:0]
		}
		if n := prec - len(digits); n > 0 {
			zeroExtend = n
		}
	}

	// plus and space apply to signed conversions only
	var prefix []byte
	if d.Flags.Has(Flag_AlternateForm) {
		switch base {
		case 16:
			// the prefix stays lowercase even for `%X`
			if v != 0 {
				prefix = []byte("0x")
			}
		case 8:
			// the first output character must be a zero
			if zeroExtend == 0 && (len(digits) == 0 || digits[0] != '0') {
				zeroExtend = 1
			}
		}
	}
	return writeNumber(cw, d, prefix, zeroExtend, digits, !d.Precision.IsSet())
}

func upperHexDigits(digits []byte) {
	for i, ch := range digits {
		if ch >= 'a' && ch <= 'f' {
			digits[i] = ch - ('a' - 'A')
		}
	}
}

func writeDouble(cw *countingWriter, d Directive, s Double) error {
	var (
		buf     [64]byte
		signBuf [1]byte
	)
	prec := d.Precision.Or(6)
	if prec < 0 {
		prec = 6
	}
	upper := s.Format.IsUpper()
	neg := math.Signbit(s.Value)
	prefix := signPrefix(d.Flags, neg, &signBuf)

	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		body := []byte("inf")
		if math.IsNaN(s.Value) {
			body = []byte("nan")
		}
		if upper {
			body = bytes.ToUpper(body)
		}
		// nan and inf never zero-fill
		return writeNumber(cw, d, prefix, 0, body, false)
	}

	fmtChar := byte('f')
	switch s.Format {
	case DoubleFormat_Scientific:
		fmtChar = 'e'
	case DoubleFormat_UpperScientific:
		fmtChar = 'E'
	}
	digits := strconv.AppendFloat(buf[:0], math.Abs(s.Value), fmtChar, prec, 64)

	if d.Flags.Has(Flag_AlternateForm) && prec == 0 {
		digits = retainPoint(digits)
	}
	return writeNumber(cw, d, prefix, 0, digits, true)
}

// retainPoint re-inserts the decimal point that a zero precision
// dropped: `1234` becomes `1234.`, `1e+03` becomes `1.e+03`
func retainPoint(digits []byte) []byte {
	for i, ch := range digits {
		if ch == 'e' || ch == 'E' {
			digits = append(digits, 0)
			copy(digits[i+1:], digits[i:])
			digits[i] = '.'
			return digits
		}
	}
	return append(digits, '.')
}

// writeText pads a byte run with spaces to the field width.  Strings
// are truncated to the precision first; chars and literals arrive
// without one.
func writeText(cw *countingWriter, d Directive, data []byte) error {
	if d.Precision.IsSet() {
		if prec := d.Precision.Or(0); prec >= 0 && prec < len(data) {
			data = data[:prec]
		}
	}
	if d.Flags.Has(Flag_LeftAlign) {
		if err := writeAll(cw, data); err != nil {
			return err
		}
		return padding(cw, d.Width-len(data), spacePad)
	}
	if err := padding(cw, d.Width-len(data), spacePad); err != nil {
		return err
	}
	return writeAll(cw, data)
}

// writePointer renders an address as `0x`-prefixed lowercase hex.
// Precision does not apply; zero-fill slots between the prefix and
// the digits as it does for `%#x`.
func writePointer(cw *countingWriter, d Directive, v uint64) error {
	var buf [numBufSize]byte
	digits := strconv.AppendUint(buf[:0], v, 16)
	stripped := d
	stripped.Precision = Precision{}
	return writeNumber(cw, stripped, []byte("0x"), 0, digits, true)
}
