// Package printf is a reimplementation of the C printf family as a
// library routine: a format-string interpreter and argument-rendering
// engine that matches glibc's observable output for the supported
// conversions.
//
// The engine is a pure function over a template, a variadic cursor
// and a sink.  The parser streams the template, decodes each
// conversion into a Directive, pulls the arguments the conversion
// calls for at the widths its length modifier dictates, and hands
// every directive to the sink, which renders it and reports a byte
// count.  The engine holds no state across calls and allocates
// nothing on the hot path, so it is safe to call concurrently as long
// as each call brings its own cursor and sink.
//
// Output differs from glibc in a few documented ways:
//
//   - `%X` with the `#` flag keeps a lowercase `0x` prefix.
//   - `%g`, `%G`, `%a` and `%A` render as `%f`/`%F`.
//   - `%n` never writes through its pointer.  ByteSink accepts the
//     directive and stays inert; TextSink refuses it unless the
//     `render.reject_writeback` setting is cleared.
//   - TextSink only accepts fragments that are valid UTF-8.
//
// Positional re-ordering (`%1$d`), wide characters (`%ls`, `%lc`) and
// locale-dependent thousands grouping are not supported; the `'` flag
// is parsed and carried on the directive but never realized.
package printf
