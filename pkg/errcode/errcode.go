package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError
	LogSettingError

	// Taxonomy store errors
	TaxStoreNotFoundError
	TaxStoreOpenError
	TaxSchemaError
	TaxDumpReadError
	TaxDumpParseError
	TaxInsertError
	TaxIndexError
	TaxCommitError
	TaxQueryError
	TaxUnknownTermError
	TaxUnknownIDError
	TaxMalformedStoreError

	// Newick errors
	NewickParseError

	// Distance matrix errors
	MatrixHeaderError
	MatrixDimensionError
	MatrixDuplicateNameError
	MatrixValueError
	MatrixPairError
	MatrixMethodError

	// Tree builder errors
	BuilderInputError

	// Command line errors
	CLIArgumentError
)
