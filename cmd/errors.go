package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
)

// ArgumentError reports invalid values of command-line arguments.
func ArgumentError(msg string, vars ...any) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CLIArgumentError,
		Err:  fmt.Errorf("from %s: "+stripTags(msg), append([]any{fn}, vars...)...),
		Msg:  msg,
		Vars: vars,
	}
}

func stripTags(s string) string {
	r := strings.NewReplacer("<em>", "", "</em>", "")
	return r.Replace(s)
}
