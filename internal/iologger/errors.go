package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
)

// LogFileError is returned when the log file cannot be opened for
// writing, either truncated or in append mode.
func LogFileError(path string, append bool, err error) error {
	mode := "truncate"
	if append {
		mode = "append"
	}
	pc, _, _, _ := runtime.Caller(1)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot open log file <em>%s</em> (%s)",
		Vars: []any{path, mode},
		Err: fmt.Errorf("from %s: open log %s in %s mode: %w",
			runtime.FuncForPC(pc).Name(), path, mode, err),
	}
}

// LogSettingError reports a logging setting that Init does not know.
func LogSettingError(setting, val string) error {
	pc, _, _, _ := runtime.Caller(1)
	return &gn.Error{
		Code: errcode.LogSettingError,
		Msg:  "Unsupported log %s <em>%s</em>",
		Vars: []any{setting, val},
		Err: fmt.Errorf("from %s: unsupported log %s %q",
			runtime.FuncForPC(pc).Name(), setting, val),
	}
}
