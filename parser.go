package printf

import "bytes"

// templateParser keeps the state necessary to stream one call: the
// template bytes, the cursor within them, the variadic cursor the
// arguments are pulled from, and the running byte count that `%n`
// observes.  A parser lives for exactly one Format call.
type templateParser struct {
	input   []byte
	cursor  int
	args    Arguments
	emit    func(Directive) int
	written int
}

// Format interprets `template` with the arguments exposed by `args`,
// handing each parsed directive to `sink`.  It returns the sum of the
// sink's byte counts, or -1 on the first failure: an unknown
// conversion byte, an exhausted or mistyped cursor, or a negative
// sink return.  Bytes already delivered to the sink stay delivered.
//
// A NUL byte terminates the template early, matching the C calling
// convention the engine exists to serve; the end of the slice
// terminates it likewise.
func Format(template []byte, args Arguments, sink Sink) int {
	p := &templateParser{input: clipAtNul(template), args: args, emit: sink}
	if err := p.run(); err != nil {
		return -1
	}
	return p.written
}

// FormatString is Format for callers holding the template as a string
func FormatString(template string, args Arguments, sink Sink) int {
	return Format([]byte(template), args, sink)
}

// ParseDirectives performs the same traversal as Format but collects
// the directives instead of rendering them.  The running count fed to
// `%n` is computed by rendering into a discarding counter, so the
// collected directives match what a real sink would have seen.
func ParseDirectives(template []byte, args Arguments) ([]Directive, error) {
	var out []Directive
	cfg := NewConfig()
	cfg.SetBool("render.reject_writeback", false)
	p := &templateParser{input: clipAtNul(template), args: args}
	p.emit = func(d Directive) int {
		out = append(out, d)
		n, _ := renderDirective(discardWriter{}, d, cfg)
		return n
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return out, nil
}

// clipAtNul cuts the template at the first NUL byte
func clipAtNul(template []byte) []byte {
	if i := bytes.IndexByte(template, 0); i >= 0 {
		return template[:i]
	}
	return template
}

// run alternates between emitting literal runs and parsing
// conversions until the template is exhausted
func (p *templateParser) run() error {
	for {
		start := p.cursor
		for p.cursor < len(p.input) && p.input[p.cursor] != '%' {
			p.cursor++
		}
		if p.cursor > start {
			rg := NewRange(start, p.cursor)
			if err := p.emitDirective(NewDirective(NewLiteral(p.input[rg.Start:rg.End]), rg)); err != nil {
				return err
			}
		}
		if p.cursor >= len(p.input) {
			return nil
		}
		if err := p.parseConversion(); err != nil {
			return err
		}
	}
}

func (p *templateParser) emitDirective(d Directive) error {
	n := p.emit(d)
	if n < 0 {
		return &SinkError{Directive: d}
	}
	p.written += n
	return nil
}

// parseConversion decodes one `%`-prefixed run.  The phases are pure
// prefix consumers with no backtracking: Flags, Width, Precision,
// Length, Conversion, in that order.
func (p *templateParser) parseConversion() error {
	start := p.cursor
	p.cursor++
	if p.cursor >= len(p.input) {
		// a trailing `%` is treated as `%` followed by NUL: the
		// dangling byte comes out as a literal and the template ends
		rg := NewRange(start, p.cursor)
		return p.emitDirective(NewDirective(NewLiteral(p.input[rg.Start:rg.End]), rg))
	}

	var (
		d   Directive
		err error
	)
	d.Flags = p.parseFlags()
	if d.Width, err = p.parseWidth(); err != nil {
		return err
	}
	if d.Precision, err = p.parsePrecision(); err != nil {
		return err
	}
	length := p.parseLength()
	if d.Specifier, err = p.parseSpecifier(length); err != nil {
		return err
	}
	d.rg = NewRange(start, p.cursor)
	return p.emitDirective(d)
}

// parseFlags consumes zero or more flag characters.  Duplicates are
// idempotent; scanning stops at the first byte that isn't a flag.
func (p *templateParser) parseFlags() Flags {
	var flags Flags
	for ; p.cursor < len(p.input); p.cursor++ {
		switch p.input[p.cursor] {
		case '-':
			flags |= Flag_LeftAlign
		case '+':
			flags |= Flag_PrependPlus
		case ' ':
			flags |= Flag_PrependSpace
		case '0':
			flags |= Flag_PrependZero
		case '\'':
			flags |= Flag_ThousandsGrouping
		case '#':
			flags |= Flag_AlternateForm
		default:
			return flags
		}
	}
	return flags
}

// parseWidth consumes a decimal run, or pulls one int from the cursor
// when the field is `*`.  Absence yields width 0.
func (p *templateParser) parseWidth() (int, error) {
	if p.cursor < len(p.input) && p.input[p.cursor] == '*' {
		p.cursor++
		v, err := p.args.FetchInt()
		return int(v), err
	}
	width := 0
	for p.cursor < len(p.input) {
		ch := p.input[p.cursor]
		if ch < '0' || ch > '9' {
			break
		}
		width = width*10 + int(ch&0x0f)
		p.cursor++
	}
	return width, nil
}

// parsePrecision consumes `.` followed by a width-style field.  A dot
// with no digits means an explicit precision of zero, which is not
// the same as no precision at all.
func (p *templateParser) parsePrecision() (Precision, error) {
	if p.cursor >= len(p.input) || p.input[p.cursor] != '.' {
		return Precision{}, nil
	}
	p.cursor++
	v, err := p.parseWidth()
	if err != nil {
		return Precision{}, err
	}
	return NewPrecision(v), nil
}

// parseLength recognizes `hh`, `h`, `l`, `ll`, `z` and `t`; anything
// else keeps the default int width-class
func (p *templateParser) parseLength() Length {
	if p.cursor >= len(p.input) {
		return Length_Int
	}
	switch p.input[p.cursor] {
	case 'h':
		p.cursor++
		if p.cursor < len(p.input) && p.input[p.cursor] == 'h' {
			p.cursor++
			return Length_Char
		}
		return Length_Short
	case 'l':
		p.cursor++
		if p.cursor < len(p.input) && p.input[p.cursor] == 'l' {
			p.cursor++
			return Length_LongLong
		}
		return Length_Long
	case 'z':
		p.cursor++
		return Length_Usize
	case 't':
		p.cursor++
		return Length_Isize
	}
	return Length_Int
}

// parseSpecifier inspects the conversion byte and pulls the argument
// it calls for.  Floats are always pulled 64 bits wide regardless of
// the length modifier.
func (p *templateParser) parseSpecifier(length Length) (Specifier, error) {
	if p.cursor >= len(p.input) {
		return nil, &TemplateError{Offset: p.cursor}
	}
	ch := p.input[p.cursor]
	p.cursor++

	switch ch {
	case '%':
		return Percent{}, nil
	case 'd', 'i':
		v, err := fetchSigned(p.args, length)
		if err != nil {
			return nil, err
		}
		return SignedInt{Value: v, Length: length}, nil
	case 'u':
		v, err := fetchUnsigned(p.args, length)
		if err != nil {
			return nil, err
		}
		return UnsignedInt{Value: v, Length: length}, nil
	case 'o':
		v, err := fetchUnsigned(p.args, length)
		if err != nil {
			return nil, err
		}
		return Octal{UnsignedInt{Value: v, Length: length}}, nil
	case 'x':
		v, err := fetchUnsigned(p.args, length)
		if err != nil {
			return nil, err
		}
		return Hex{UnsignedInt{Value: v, Length: length}}, nil
	case 'X':
		v, err := fetchUnsigned(p.args, length)
		if err != nil {
			return nil, err
		}
		return UpperHex{UnsignedInt{Value: v, Length: length}}, nil
	case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
		v, err := p.args.FetchDouble()
		if err != nil {
			return nil, err
		}
		return Double{Value: v, Format: doubleFormatFor(ch)}, nil
	case 's':
		data, err := p.args.FetchString()
		if err != nil {
			return nil, err
		}
		return String{Data: data}, nil
	case 'c':
		v, err := p.args.FetchInt()
		if err != nil {
			return nil, err
		}
		return Char{Value: byte(v)}, nil
	case 'p':
		v, err := p.args.FetchPtr()
		if err != nil {
			return nil, err
		}
		return Pointer{Value: v}, nil
	case 'n':
		v, err := p.args.FetchPtr()
		if err != nil {
			return nil, err
		}
		return WriteBytesWritten{Count: p.written, Dest: v}, nil
	}
	return nil, &TemplateError{Byte: ch, Offset: p.cursor - 1}
}

func doubleFormatFor(ch byte) DoubleFormat {
	var format DoubleFormat
	switch ch {
	case 'f', 'F':
		format = DoubleFormat_Normal
	case 'e', 'E':
		format = DoubleFormat_Scientific
	case 'g', 'G':
		format = DoubleFormat_Auto
	case 'a', 'A':
		format = DoubleFormat_Hex
	}
	return format.SetUpper(ch >= 'A' && ch <= 'Z')
}
