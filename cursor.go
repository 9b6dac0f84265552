package printf

import (
	"bytes"
	"fmt"
)

// Arguments is the variadic cursor: an opaque, typed accessor over
// the argument pack that follows the template.  The engine pulls
// exactly one argument per fetch, in strict left-to-right template
// order, so implementations only need to expose the next value at
// the width asked for.
//
// FFI implementations map these fetches onto the platform's native
// variadic mechanism.  FetchString resolves a pointer argument to its
// NUL-terminated bytes on the cursor's side of the boundary, since
// the engine itself can't portably dereference a raw address; a NULL
// pointer must come back as a nil slice.
type Arguments interface {
	FetchInt() (int32, error)
	FetchLong() (int64, error)
	FetchLongLong() (int64, error)
	FetchUsize() (uint64, error)
	FetchDouble() (float64, error)
	FetchPtr() (uint64, error)
	FetchString() ([]byte, error)
}

// fetchSigned pulls one signed integer at the ABI width selected by
// the length modifier and narrows it back to that width.  `hh` and
// `h` arguments arrive widened to int by the C default promotions,
// so narrowing is a reinterpretation of the low bits: 0xFFFFFF83
// under `hh` becomes -125.
func fetchSigned(args Arguments, length Length) (int64, error) {
	switch length {
	case Length_Char:
		v, err := args.FetchInt()
		return int64(int8(v)), err
	case Length_Short:
		v, err := args.FetchInt()
		return int64(int16(v)), err
	case Length_Long:
		return args.FetchLong()
	case Length_LongLong:
		return args.FetchLongLong()
	case Length_Usize, Length_Isize:
		v, err := args.FetchUsize()
		return int64(v), err
	default:
		v, err := args.FetchInt()
		return int64(v), err
	}
}

// fetchUnsigned is the unsigned counterpart of fetchSigned
func fetchUnsigned(args Arguments, length Length) (uint64, error) {
	switch length {
	case Length_Char:
		v, err := args.FetchInt()
		return uint64(uint8(v)), err
	case Length_Short:
		v, err := args.FetchInt()
		return uint64(uint16(v)), err
	case Length_Long:
		v, err := args.FetchLong()
		return uint64(v), err
	case Length_LongLong:
		v, err := args.FetchLongLong()
		return uint64(v), err
	case Length_Usize, Length_Isize:
		return args.FetchUsize()
	default:
		v, err := args.FetchInt()
		return uint64(uint32(v)), err
	}
}

// ArgList is a scripted in-memory cursor.  It drives the engine from
// a plain Go argument list, which is what host-language callers and
// the test suite use instead of a native variadic pack.
type ArgList struct {
	args []any
	pos  int
}

func NewArgList(args ...any) *ArgList {
	return &ArgList{args: args}
}

// Remaining returns how many arguments are left to be fetched
func (a *ArgList) Remaining() int {
	return len(a.args) - a.pos
}

func (a *ArgList) next(want string) (any, error) {
	if a.pos >= len(a.args) {
		return nil, fmt.Errorf("argument %d: cursor exhausted, wanted %s", a.pos, want)
	}
	v := a.args[a.pos]
	a.pos++
	return v, nil
}

func (a *ArgList) mismatch(want string, got any) error {
	return fmt.Errorf("argument %d: wanted %s, got %T", a.pos-1, want, got)
}

func (a *ArgList) FetchInt() (int32, error) {
	v, err := a.next("int")
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int:
		return int32(v), nil
	case int8:
		return int32(v), nil
	case int16:
		return int32(v), nil
	case int32:
		return v, nil
	case uint8:
		return int32(v), nil
	case uint16:
		return int32(v), nil
	case uint32:
		return int32(v), nil
	case uint:
		return int32(uint32(v)), nil
	}
	return 0, a.mismatch("int", v)
}

func (a *ArgList) FetchLong() (int64, error) {
	return a.fetch64("long")
}

func (a *ArgList) FetchLongLong() (int64, error) {
	return a.fetch64("long long")
}

func (a *ArgList) fetch64(want string) (int64, error) {
	v, err := a.next(want)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	}
	return 0, a.mismatch(want, v)
}

func (a *ArgList) FetchUsize() (uint64, error) {
	v, err := a.next("size_t")
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int:
		return uint64(v), nil
	case int64:
		return uint64(v), nil
	case uint:
		return uint64(v), nil
	case uint64:
		return v, nil
	case uintptr:
		return uint64(v), nil
	}
	return 0, a.mismatch("size_t", v)
}

func (a *ArgList) FetchDouble() (float64, error) {
	v, err := a.next("double")
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	return 0, a.mismatch("double", v)
}

func (a *ArgList) FetchPtr() (uint64, error) {
	v, err := a.next("pointer")
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case nil:
		return 0, nil
	case uintptr:
		return uint64(v), nil
	case uint64:
		return v, nil
	case int:
		return uint64(v), nil
	}
	return 0, a.mismatch("pointer", v)
}

func (a *ArgList) FetchString() ([]byte, error) {
	v, err := a.next("string")
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return truncateAtNul([]byte(v)), nil
	case []byte:
		return truncateAtNul(v), nil
	}
	return nil, a.mismatch("string", v)
}

// truncateAtNul cuts the slice at the first NUL byte, mimicking the C
// string the cursor would hand back over FFI
func truncateAtNul(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
