package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
)

// fsError builds a file system error for path. The wrapped error
// records the function that called the public constructor.
func fsError(
	code gn.ErrorCode, msg, action, path string, err error,
) error {
	pc, _, _, _ := runtime.Caller(2)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err: fmt.Errorf("from %s: cannot %s %s: %w",
			runtime.FuncForPC(pc).Name(), action, path, err),
	}
}

func CreateDirError(dir string, err error) error {
	return fsError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", "create", dir, err)
}

func CopyFileError(file string, err error) error {
	return fsError(errcode.CopyFileError,
		"Cannot copy config file to <em>%s</em>", "copy to", file, err)
}

func ReadFileError(path string, err error) error {
	return fsError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", "read", path, err)
}

func WriteFileError(path string, err error) error {
	return fsError(errcode.WriteFileError,
		"Cannot write <em>%s</em>", "write", path, err)
}
