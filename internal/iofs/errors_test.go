package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	origErr := errors.New("permission denied")

	tests := []struct {
		msg    string
		err    error
		code   gn.ErrorCode
		path   string
		action string
	}{
		{"create dir", CreateDirError("/tmp/nwr", origErr),
			errcode.CreateDirError, "/tmp/nwr", "cannot create"},
		{"copy file", CopyFileError("/tmp/nwr/config.yaml", origErr),
			errcode.CopyFileError, "/tmp/nwr/config.yaml", "cannot copy to"},
		{"read file", ReadFileError("tree.nwk", origErr),
			errcode.ReadFileError, "tree.nwk", "cannot read"},
		{"write file", WriteFileError("out.phy", origErr),
			errcode.WriteFileError, "out.phy", "cannot write"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			assert.Equal(t, []any{tt.path}, gnErr.Vars)
			assert.ErrorIs(t, gnErr.Err, origErr)

			// the caller of the constructor is this test
			assert.Contains(t, gnErr.Err.Error(), "iofs.TestErrors")
			assert.Contains(t, gnErr.Err.Error(), tt.action+" "+tt.path)
		})
	}
}

func TestErrors_Nested(t *testing.T) {
	base := errors.New("no space left on device")
	err := WriteFileError("out.nwk", ReadFileError("in.nwk", base))

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, base)

	var inner *gn.Error
	require.True(t, errors.As(gnErr.Err, &inner))
	assert.Equal(t, errcode.ReadFileError, inner.Code)
}
