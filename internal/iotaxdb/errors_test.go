package iotaxdb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Structure verifies codes and wrapping of store errors.
func TestErrors_Structure(t *testing.T) {
	origErr := errors.New("disk I/O error")

	tests := []struct {
		msg     string
		err     error
		code    gn.ErrorCode
		wrapped bool
	}{
		{"not found", StoreNotFoundError("/tmp/taxonomy.sqlite"),
			errcode.TaxStoreNotFoundError, false},
		{"open", StoreOpenError("/tmp/taxonomy.sqlite", origErr),
			errcode.TaxStoreOpenError, true},
		{"schema", SchemaError(origErr), errcode.TaxSchemaError, true},
		{"dump read", DumpReadError("nodes.dmp", origErr),
			errcode.TaxDumpReadError, true},
		{"dump parse", DumpParseError("nodes.dmp", 42, origErr),
			errcode.TaxDumpParseError, true},
		{"insert", InsertError("node", origErr), errcode.TaxInsertError, true},
		{"index", IndexError("CREATE INDEX", origErr),
			errcode.TaxIndexError, true},
		{"commit", CommitError("/tmp/taxonomy.sqlite", origErr),
			errcode.TaxCommitError, true},
		{"query", QueryError(origErr), errcode.TaxQueryError, true},
		{"unknown term", UnknownTermError("Foo bar"),
			errcode.TaxUnknownTermError, false},
		{"unknown id", UnknownIDError(31337), errcode.TaxUnknownIDError, false},
		{"malformed", MalformedStoreError(9606, 9605),
			errcode.TaxMalformedStoreError, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.NotNil(t, gnErr.Err)
			if tt.wrapped {
				assert.ErrorIs(t, gnErr.Err, origErr)
			}
		})
	}
}

func TestIsUnknown(t *testing.T) {
	assert.True(t, IsUnknown(UnknownTermError("Foo")))
	assert.True(t, IsUnknown(UnknownIDError(1)))
	assert.False(t, IsUnknown(QueryError(errors.New("boom"))))
	assert.False(t, IsUnknown(errors.New("unknown term: Foo")))
	assert.False(t, IsUnknown(nil))
}
