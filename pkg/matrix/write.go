package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Format is a PHYLIP dialect.
type Format int

const (
	// Full writes square tab-separated rows.
	Full Format = iota
	// Lower writes tab-separated values below the diagonal.
	Lower
	// Strict writes names in 10 columns and values with 6 decimals.
	Strict
)

// NewFormat converts a command-line value. It returns false for unknown
// values.
func NewFormat(s string) (Format, bool) {
	switch s {
	case "full":
		return Full, true
	case "lower":
		return Lower, true
	case "strict":
		return Strict, true
	default:
		return 0, false
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WritePhylip writes the matrix in the given dialect.
func (m *Matrix) WritePhylip(w io.Writer, f Format) error {
	bw := bufio.NewWriter(w)
	n := m.Len()

	if f == Strict {
		fmt.Fprintf(bw, "%5d\n", n)
	} else {
		fmt.Fprintf(bw, "%d\n", n)
	}

	for i, name := range m.names {
		switch f {
		case Strict:
			if len(name) > 10 {
				name = name[:10]
			}
			fmt.Fprintf(bw, "%-10s", name)
			for j := range n {
				fmt.Fprintf(bw, " %.6f", m.Get(i, j))
			}
		case Lower:
			bw.WriteString(name)
			for j := range i {
				bw.WriteString("\t" + formatValue(m.Get(i, j)))
			}
		default:
			bw.WriteString(name)
			for j := range n {
				bw.WriteString("\t" + formatValue(m.Get(i, j)))
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WritePairs writes every pair of different names once.
func (m *Matrix) WritePairs(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, a := range m.names {
		for j := i + 1; j < m.Len(); j++ {
			fmt.Fprintf(bw, "%s\t%s\t%s\n", a, m.names[j], formatValue(m.Get(i, j)))
		}
	}
	return bw.Flush()
}
