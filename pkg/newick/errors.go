package newick

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
)

// SyntaxError describes a position where Newick parsing failed.
type SyntaxError struct {
	// Offset is the byte offset in the input.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("newick: %s at byte %d", e.Msg, e.Offset)
}

// ParseError wraps a SyntaxError into a user-facing error.
func ParseError(offset int, msg string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NewickParseError,
		Msg:  "Cannot parse Newick tree at byte <em>%d</em>: %s",
		Vars: []any{offset, msg},
		Err: fmt.Errorf("from %s: %w",
			fn.Name(), &SyntaxError{Offset: offset, Msg: msg}),
	}
}
