package printf

import (
	"fmt"
	"strconv"
	"strings"
)

type FormatToken int

const (
	FormatToken_None FormatToken = iota
	FormatToken_Range
	FormatToken_Literal
	FormatToken_Spec
)

var explainTheme = map[FormatToken]string{
	FormatToken_None:    "\033[0m",          // reset
	FormatToken_Range:   "\033[1;31;5;228m", // orange
	FormatToken_Literal: "\033[1;38;5;245m", // gray
	FormatToken_Spec:    "\033[1;38;5;127m", // pink
}

// FormatFunc decorates one fragment of explain output, keyed by what
// kind of fragment it is.  The highlight printer maps tokens to ANSI
// escapes; the plain printer is the identity.
type FormatFunc func(input string, token FormatToken) string

// ExplainString parses the template against `args` and returns a
// tree rendering of the resulting directives, one branch per parsed
// conversion.  Intended for debugging templates, not for output.
func ExplainString(template string, args Arguments) (string, error) {
	return explain(template, args, func(input string, _ FormatToken) string {
		return input
	})
}

// HighlightExplainString is ExplainString with the ANSI color theme
func HighlightExplainString(template string, args Arguments) (string, error) {
	return explain(template, args, func(input string, token FormatToken) string {
		return explainTheme[token] + input + explainTheme[FormatToken_None]
	})
}

func explain(template string, args Arguments, format FormatFunc) (string, error) {
	directives, err := ParseDirectives([]byte(template), args)
	if err != nil {
		return "", err
	}
	dp := &directivePrinter{format: format}
	for _, d := range directives {
		dp.printDirective(d)
	}
	return dp.output.String(), nil
}

// directivePrinter accumulates the tree rendering, one top-level
// line per directive with the conversion fields as branches
type directivePrinter struct {
	output strings.Builder
	format FormatFunc
}

func (dp *directivePrinter) write(s string)  { dp.output.WriteString(s) }
func (dp *directivePrinter) writel(s string) { dp.write(s); dp.output.WriteByte('\n') }

func (dp *directivePrinter) printDirective(d Directive) {
	if s, ok := d.Specifier.(Literal); ok {
		dp.write(dp.format("Literal ", FormatToken_Spec))
		dp.write(dp.format(strconv.Quote(string(s.Data)), FormatToken_Literal))
		dp.writel(dp.format(fmt.Sprintf(" (%s)", d.Range()), FormatToken_Range))
		return
	}

	dp.write(dp.format(fmt.Sprintf("Conversion<%s>", d.Specifier.Type()), FormatToken_Spec))
	dp.writel(dp.format(fmt.Sprintf(" (%s)", d.Range()), FormatToken_Range))

	lines := []string{
		fmt.Sprintf("flags %q", d.Flags.String()),
		fmt.Sprintf("width %d", d.Width),
		fmt.Sprintf("precision %s", d.Precision),
	}
	if payload := dp.payloadLine(d.Specifier); payload != "" {
		lines = append(lines, payload)
	}
	for i, line := range lines {
		if i == len(lines)-1 {
			dp.writel("└── " + line)
			continue
		}
		dp.writel("├── " + line)
	}
}

func (dp *directivePrinter) payloadLine(spec Specifier) string {
	switch s := spec.(type) {
	case Percent:
		return ""
	case SignedInt:
		return fmt.Sprintf("value %d (%s)", s.Value, s.Length)
	case UnsignedInt:
		return fmt.Sprintf("value %d (%s)", s.Value, s.Length)
	case Octal:
		return fmt.Sprintf("value 0%s (%s)", strconv.FormatUint(s.Value, 8), s.Length)
	case Hex:
		return fmt.Sprintf("value 0x%s (%s)", strconv.FormatUint(s.Value, 16), s.Length)
	case UpperHex:
		return fmt.Sprintf("value 0x%s (%s)", strings.ToUpper(strconv.FormatUint(s.Value, 16)), s.Length)
	case Double:
		return fmt.Sprintf("value %v (%s)", s.Value, s.Format)
	case Char:
		return fmt.Sprintf("value %q", s.Value)
	case String:
		if s.Data == nil {
			return "value NULL"
		}
		return fmt.Sprintf("value %s", strconv.Quote(string(s.Data)))
	case Pointer:
		return fmt.Sprintf("value 0x%s", strconv.FormatUint(s.Value, 16))
	case WriteBytesWritten:
		return fmt.Sprintf("count %d dest 0x%s", s.Count, strconv.FormatUint(s.Dest, 16))
	}
	return ""
}
