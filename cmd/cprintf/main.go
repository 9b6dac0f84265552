package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/xyproto/env/v2"

	"github.com/cfmt/printf"
)

type args struct {
	explain   *bool
	dump      *bool
	highlight *bool
	nullText  *string
}

func readArgs() *args {
	a := &args{
		// Debugging Options

		explain: flag.Bool("explain", false, "Print the directive tree instead of rendering"),
		dump:    flag.Bool("dump", false, "Dump the parsed directives"),

		// Output Options

		highlight: flag.Bool("highlight", env.Bool("CPRINTF_COLOR"), "Colorize the explain output"),
		nullText:  flag.String("null", env.Str("CPRINTF_NULL", "(null)"), "Text rendered for NULL string arguments"),
	}

	flag.Parse()

	return a
}

func main() {
	a := readArgs()
	if flag.NArg() < 1 {
		log.Fatal("usage: cprintf [options] FORMAT [ARG...]")
	}
	template := flag.Arg(0)

	cursor, err := cursorFor(template, flag.Args()[1:])
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *a.dump:
		directives, err := printf.ParseDirectives([]byte(template), cursor)
		if err != nil {
			log.Fatal(err)
		}
		spew.Dump(directives)

	case *a.explain:
		explainFn := printf.ExplainString
		if *a.highlight {
			explainFn = printf.HighlightExplainString
		}
		out, err := explainFn(template, cursor)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out)

	default:
		cfg := printf.NewConfig()
		cfg.SetString("render.null_string", *a.nullText)
		cfg.SetBool("render.reject_writeback", false)
		if printf.FormatString(template, cursor, printf.ByteSinkWithConfig(os.Stdout, cfg)) < 0 {
			os.Exit(1)
		}
	}
}

// cursorFor types the command line words by the template itself:
// integer-consuming conversions parse their word as an integer (any
// base strconv accepts), float conversions as a float, pointers as
// an address, and everything else rides along as a string.
func cursorFor(template string, words []string) (*printf.ArgList, error) {
	kinds := argKinds(template)
	if len(words) < len(kinds) {
		return nil, fmt.Errorf("template wants %d arguments, got %d", len(kinds), len(words))
	}
	vals := make([]any, 0, len(kinds))
	for i, kind := range kinds {
		word := words[i]
		switch kind {
		case 'i':
			n, err := strconv.ParseInt(word, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals = append(vals, int(n))
		case 'f':
			f, err := strconv.ParseFloat(word, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals = append(vals, f)
		case 'p':
			p, err := strconv.ParseUint(word, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals = append(vals, p)
		default:
			vals = append(vals, word)
		}
	}
	return printf.NewArgList(vals...), nil
}

// argKinds scans the template and returns one kind byte per argument
// the engine will pull: 'i' for ints (including `*` width and
// precision pulls), 'f' for doubles, 's' for strings, 'p' for
// addresses.
func argKinds(template string) []byte {
	var kinds []byte
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		i++
		for i < len(template) && strings.IndexByte("-+ 0'#", template[i]) >= 0 {
			i++
		}
		for pass := 0; pass < 2; pass++ {
			if pass == 1 {
				if i >= len(template) || template[i] != '.' {
					break
				}
				i++
			}
			if i < len(template) && template[i] == '*' {
				kinds = append(kinds, 'i')
				i++
				continue
			}
			for i < len(template) && template[i] >= '0' && template[i] <= '9' {
				i++
			}
		}
		for i < len(template) && strings.IndexByte("hlzt", template[i]) >= 0 {
			i++
		}
		if i >= len(template) {
			break
		}
		switch template[i] {
		case 'd', 'i', 'u', 'o', 'x', 'X', 'c':
			kinds = append(kinds, 'i')
		case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
			kinds = append(kinds, 'f')
		case 's':
			kinds = append(kinds, 's')
		case 'p', 'n':
			kinds = append(kinds, 'p')
		}
	}
	return kinds
}
