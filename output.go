package printf

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

// Sink consumes one directive and returns the number of bytes it
// wrote, or -1 to abort the remaining work.  The engine sums the
// returns; it never retracts output a sink has already accepted.
type Sink func(Directive) int

// TextSink returns a sink that accumulates rendered text into `sb`.
// Every fragment is validated as UTF-8 before being committed, and
// the write-back directive is refused; both failures return -1.
func TextSink(sb *strings.Builder) Sink {
	return TextSinkWithConfig(sb, NewConfig())
}

// TextSinkWithConfig is TextSink with sink policy taken from `cfg`:
// `render.null_string` replaces NULL string arguments, and setting
// `render.reject_writeback` to false makes `%n` inert instead of an
// error.
func TextSinkWithConfig(sb *strings.Builder, cfg *Config) Sink {
	var scratch bytes.Buffer
	return func(d Directive) int {
		scratch.Reset()
		n, err := renderDirective(&scratch, d, cfg)
		if err != nil {
			return -1
		}
		if !utf8.Valid(scratch.Bytes()) {
			return -1
		}
		sb.Write(scratch.Bytes())
		return n
	}
}

// ByteSink returns a sink that streams raw rendered bytes into `w`
// with no validation.  The write-back directive is inert: accepted,
// zero bytes, no pointer write.
func ByteSink(w io.Writer) Sink {
	cfg := NewConfig()
	cfg.SetBool("render.reject_writeback", false)
	return ByteSinkWithConfig(w, cfg)
}

// ByteSinkWithConfig is ByteSink with sink policy taken from `cfg`
func ByteSinkWithConfig(w io.Writer, cfg *Config) Sink {
	return func(d Directive) int {
		n, err := renderDirective(w, d, cfg)
		if err != nil {
			return -1
		}
		return n
	}
}

// Formatter renders a template lazily, on the first String call, so
// a formatted message can travel as a value and only pay for
// rendering if something actually displays it.
type Formatter struct {
	template string
	args     []any
	written  int
	rendered bool
	out      string
}

func NewFormatter(template string, args ...any) *Formatter {
	return &Formatter{template: template, args: args}
}

// String renders the template on first use and caches the result.
// On failure it returns the empty string and BytesWritten reports
// -1.
func (f *Formatter) String() string {
	if !f.rendered {
		var sb strings.Builder
		f.written = FormatString(f.template, NewArgList(f.args...), TextSink(&sb))
		if f.written >= 0 {
			f.out = sb.String()
		}
		f.rendered = true
	}
	return f.out
}

// BytesWritten returns the byte count of the rendered output, -1 on
// failure, or 0 if String has not been called yet
func (f *Formatter) BytesWritten() int {
	return f.written
}
