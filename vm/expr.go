package vm

import (
	"iter"
	"maps"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var _vm_defines = map[string]uint64{
	"REGISTER_COUNT": REGISTER_COUNT,
	"FLAGS":          REG_FLAGS,
	"IC":             REG_IC,
	"FLAG_ZERO":      uint64(FLAG_ZERO),
	"FLAG_GREATER":   uint64(FLAG_GREATER),
	"FLAG_OVERFLOW":  uint64(FLAG_OVERFLOW),
	"CALL_DUMP":      CALL_DUMP,
}

// Defines returns the predefined VM constants.
func Defines() iter.Seq2[string, uint64] {
	return maps.All(_vm_defines)
}

// Eval evaluates a compile-time integer expression such as "1000 * 1000" or
// "IC + 1", with the defines predeclared.
func Eval(expr string, defines iter.Seq2[string, uint64]) (value uint64, err error) {
	thread := starlark.Thread{Name: "eval"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	if defines != nil {
		for key, val := range defines {
			pred[key] = starlark.MakeUint64(val)
		}
	}

	prog := "rc = " + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression
		return
	}

	return
}
