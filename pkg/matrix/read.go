package matrix

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ReadPhylip reads a relaxed PHYLIP matrix. The first line holds the
// dimension, every row starts with a name followed by whitespace
// separated values. Rows can be full or lower-triangular, with or
// without the diagonal. Asymmetric full matrices are averaged.
func ReadPhylip(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var n int
	var rows [][]string
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if rows == nil {
			var err error
			if n, err = strconv.Atoi(fields[0]); err != nil || n < 1 {
				return nil, HeaderError(sc.Text())
			}
			rows = make([][]string, 0, n)
			continue
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, HeaderError("")
	}
	if len(rows) != n {
		return nil, DimensionError(
			"Matrix declares <em>%d</em> rows, found <em>%d</em>", n, len(rows))
	}

	names := make([]string, n)
	for i, row := range rows {
		names[i] = row[0]
	}
	res, err := New(names)
	if err != nil {
		return nil, err
	}

	full := make([][]float64, n)
	for i, row := range rows {
		vals := row[1:]
		switch len(vals) {
		case n, i, i + 1:
		default:
			return nil, DimensionError(
				"Row <em>%s</em> has <em>%d</em> values, expected %d",
				row[0], len(vals), n)
		}
		full[i] = make([]float64, len(vals))
		for j, v := range vals {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, ValueError(row[0], v, err)
			}
			full[i][j] = f
		}
	}

	for i := range n {
		for j := range i {
			v, ok := cell(full, i, j)
			w, okT := cell(full, j, i)
			switch {
			case ok && okT:
				res.Set(i, j, (v+w)/2)
			case ok:
				res.Set(i, j, v)
			case okT:
				res.Set(i, j, w)
			}
		}
	}
	return res, nil
}

func cell(rows [][]float64, i, j int) (float64, bool) {
	if j < len(rows[i]) {
		return rows[i][j], true
	}
	return 0, false
}

// ReadPairs reads lines of name1, name2, value separated by tabs. Names
// get indices in order of first appearance. Absent pairs get missing,
// absent self-pairs get same. A pair given in both directions is
// averaged.
func ReadPairs(r io.Reader, same, missing float64) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	type pair struct{ i, j int }
	var names []string
	idx := make(map[string]int)
	sums := make(map[pair]float64)
	counts := make(map[pair]int)

	nameIdx := func(s string) int {
		if i, ok := idx[s]; ok {
			return i
		}
		idx[s] = len(names)
		names = append(names, s)
		return idx[s]
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return nil, PairError(line, strings.Join(rec, "\t"))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, ValueError(rec[0]+"/"+rec[1], rec[2], err)
		}
		i, j := nameIdx(rec[0]), nameIdx(rec[1])
		if i > j {
			i, j = j, i
		}
		sums[pair{i, j}] += v
		counts[pair{i, j}]++
	}

	res, err := New(names)
	if err != nil {
		return nil, err
	}
	for i := range names {
		for j := i; j < len(names); j++ {
			p := pair{i, j}
			switch {
			case counts[p] > 0:
				res.Set(i, j, sums[p]/float64(counts[p]))
			case i == j:
				res.Set(i, j, same)
			default:
				res.Set(i, j, missing)
			}
		}
	}
	return res, nil
}
