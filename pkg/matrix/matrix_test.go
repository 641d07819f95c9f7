package matrix_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
	"github.com/gnames/nwr/pkg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPhylip = `4
A	0	1	2	3
B	1	0	4	5
C	2	4	0	6
D	3	5	6	0
`

func assertSymmetric(t *testing.T, m *matrix.Matrix) {
	t.Helper()
	for i := range m.Len() {
		assert.Equal(t, 0.0, m.Get(i, i))
		for j := range m.Len() {
			assert.Equal(t, m.Get(i, j), m.Get(j, i))
		}
	}
}

func TestReadPhylip(t *testing.T) {
	tests := []struct {
		msg, in string
	}{
		{"full", fullPhylip},
		{"lower", "4\nA\nB 1\nC 2 4\nD 3 5 6\n"},
		{"lower with diagonal", "   4\nA 0\nB 1 0\n\nC 2 4 0\nD 3 5 6 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			m, err := matrix.ReadPhylip(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "B", "C", "D"}, m.Names())
			assert.Equal(t, 6.0, m.Get(2, 3))
			assert.Equal(t, 5.0, m.Get(1, 3))
			assertSymmetric(t, m)
		})
	}

	m, err := matrix.ReadPhylip(strings.NewReader("2\nA 0 1\nB 3 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, m.Get(0, 1))
}

func TestReadPhylipErrors(t *testing.T) {
	tests := []struct {
		msg, in string
		code    gn.ErrorCode
	}{
		{"header", "A 0\n", errcode.MatrixHeaderError},
		{"empty", "\n\n", errcode.MatrixHeaderError},
		{"rows", "3\nA\nB 1\n", errcode.MatrixDimensionError},
		{"values", "2\nA 0 1 2\nB 1 0\n", errcode.MatrixDimensionError},
		{"duplicate", "2\nA\nA 1\n", errcode.MatrixDuplicateNameError},
		{"not a number", "2\nA\nB x\n", errcode.MatrixValueError},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := matrix.ReadPhylip(strings.NewReader(tt.in))
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}
}

func TestReadPairs(t *testing.T) {
	in := "# comment\nA\tB\t1\nB\tA\t3\nA\tC\t2\nC\tC\t0.5\n"
	m, err := matrix.ReadPairs(strings.NewReader(in), 0, 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, m.Names())
	assert.Equal(t, 2.0, m.Get(0, 1))
	assert.Equal(t, 2.0, m.Get(2, 0))
	assert.Equal(t, 9.0, m.Get(1, 2))
	assert.Equal(t, 0.0, m.Get(0, 0))
	assert.Equal(t, 0.5, m.Get(2, 2))

	_, err = matrix.ReadPairs(strings.NewReader("A\tB\n"), 0, 1)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MatrixPairError, gnErr.Code)
}

func TestWritePhylip(t *testing.T) {
	m, err := matrix.ReadPhylip(strings.NewReader(fullPhylip))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WritePhylip(&buf, matrix.Full))
	assert.Equal(t, fullPhylip, buf.String())

	buf.Reset()
	require.NoError(t, m.WritePhylip(&buf, matrix.Lower))
	assert.Equal(t, "4\nA\nB\t1\nC\t2\t4\nD\t3\t5\t6\n", buf.String())

	buf.Reset()
	sub, _, err := m.Subset([]string{"A", "B"})
	require.NoError(t, err)
	require.NoError(t, sub.WritePhylip(&buf, matrix.Strict))
	assert.Equal(t,
		"    2\nA          0.000000 1.000000\nB          1.000000 0.000000\n",
		buf.String())

	// every dialect reads back to the same matrix
	for _, f := range []matrix.Format{matrix.Full, matrix.Lower, matrix.Strict} {
		buf.Reset()
		require.NoError(t, m.WritePhylip(&buf, f))
		m2, err := matrix.ReadPhylip(&buf)
		require.NoError(t, err)
		assert.Equal(t, m.Rows(), m2.Rows())
	}
}

func TestWritePairs(t *testing.T) {
	m, err := matrix.ReadPhylip(strings.NewReader("3\nA\nB 1\nC 2 0.5\n"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m.WritePairs(&buf))
	assert.Equal(t, "A\tB\t1\nA\tC\t2\nB\tC\t0.5\n", buf.String())

	m2, err := matrix.ReadPairs(&buf, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, m.Rows(), m2.Rows())
}

func TestSubset(t *testing.T) {
	m, err := matrix.ReadPhylip(strings.NewReader(fullPhylip))
	require.NoError(t, err)

	sub, missing, err := m.Subset([]string{"D", "X", "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, missing)
	assert.Equal(t, []string{"D", "B"}, sub.Names())
	assert.Equal(t, 5.0, sub.Get(0, 1))

	_, _, err = m.Subset([]string{"X"})
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	a, err := matrix.ReadPhylip(strings.NewReader(fullPhylip))
	require.NoError(t, err)
	b, err := matrix.ReadPhylip(strings.NewReader(
		"5\nB\nA 2\nD 10 6\nC 8 4 12\nE 1 1 1 1\n"))
	require.NoError(t, err)

	res, err := matrix.Compare(a, b, matrix.Methods)
	require.NoError(t, err)
	require.Len(t, res, 6)

	vals := make(map[matrix.Method]float64)
	for _, v := range res {
		vals[v.Method] = v.Value
	}
	// b is a doubled over common names
	assert.InDelta(t, 1.0, vals[matrix.Pearson], 1e-12)
	assert.InDelta(t, 1.0, vals[matrix.Spearman], 1e-12)
	assert.InDelta(t, 3.5, vals[matrix.MAE], 1e-12)
	assert.InDelta(t, 1.0, vals[matrix.Cosine], 1e-12)
	assert.InDelta(t, 0.5, vals[matrix.WeightedJaccard], 1e-12)
	assert.InDelta(t, math.Sqrt(91), vals[matrix.Euclid], 1e-12)

	_, err = matrix.NewMethod("manhattan")
	assert.Error(t, err)
}
