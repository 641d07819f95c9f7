package matrix

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
)

func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

// HeaderError is returned when the first line does not hold the
// dimension of a matrix.
func HeaderError(line string) error {
	return &gn.Error{
		Code: errcode.MatrixHeaderError,
		Msg:  "PHYLIP matrix must start with its dimension, got <em>%s</em>",
		Vars: []any{line},
		Err:  fmt.Errorf("from %s: bad header %q", caller(), line),
	}
}

// DimensionError reports mismatch between declared and found sizes.
func DimensionError(msg string, vars ...any) error {
	return &gn.Error{
		Code: errcode.MatrixDimensionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: "+msg, append([]any{caller()}, vars...)...),
	}
}

// DuplicateNameError reports a repeated name.
func DuplicateNameError(name string) error {
	return &gn.Error{
		Code: errcode.MatrixDuplicateNameError,
		Msg:  "Duplicate name <em>%s</em> in distance matrix",
		Vars: []any{name},
		Err:  fmt.Errorf("from %s: duplicate name %q", caller(), name),
	}
}

// ValueError reports a cell that is not a number.
func ValueError(name, value string, err error) error {
	return &gn.Error{
		Code: errcode.MatrixValueError,
		Msg:  "Value <em>%s</em> of <em>%s</em> is not a number",
		Vars: []any{value, name},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

// PairError reports a malformed line of a pairwise file.
func PairError(line int, text string) error {
	return &gn.Error{
		Code: errcode.MatrixPairError,
		Msg:  "Line <em>%d</em> needs three tab-separated fields: %s",
		Vars: []any{line, text},
		Err:  fmt.Errorf("from %s: bad pair at line %d", caller(), line),
	}
}

// MethodError reports an unknown comparison method.
func MethodError(method string) error {
	return &gn.Error{
		Code: errcode.MatrixMethodError,
		Msg:  "Unknown comparison method <em>%s</em>",
		Vars: []any{method},
		Err:  fmt.Errorf("from %s: unknown method %q", caller(), method),
	}
}
