package iofs

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// Sentinels for standard streams.
const (
	Stdin  = "stdin"
	Stdout = "stdout"
)

// OpenInput opens a file for reading. Stdin sentinel or "-" stand for
// the standard input.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == Stdin || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CreateOutput creates a file for writing. Stdout sentinel or "-" stand
// for the standard output, which is never closed.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == Stdout || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, WriteFileError(path, err)
	}
	return f, nil
}

// ReadText returns the whole content of an input.
func ReadText(path string) (string, error) {
	r, err := OpenInput(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	bs, err := io.ReadAll(r)
	if err != nil {
		return "", ReadFileError(path, err)
	}
	return string(bs), nil
}

// ReadLines returns all lines of an input without line terminators.
func ReadLines(path string) ([]string, error) {
	r, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var res []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		res = append(res, strings.TrimRight(sc.Text(), "\r"))
	}
	if err = sc.Err(); err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}

// ReadNames reads the first column of a list file. Blank lines and lines
// starting with '#' are ignored.
func ReadNames(path string) ([]string, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	var res []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" || strings.HasPrefix(l, "#") {
			continue
		}
		name, _, _ := strings.Cut(l, "\t")
		res = append(res, strings.TrimSpace(name))
	}
	return res, nil
}

// ReadTSV reads tab-separated records, skipping '#' lines. Records may
// have different number of fields.
func ReadTSV(path string) ([][]string, error) {
	r, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	res, err := cr.ReadAll()
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}

// Replacement is a row of a replace map: the original name followed by
// its replacements.
type Replacement struct {
	From string
	To   []string
}

// ReadReplaceMap reads rows with at least two columns. Shorter rows are
// ignored. Order of the file is preserved.
func ReadReplaceMap(path string) ([]Replacement, error) {
	rows, err := ReadTSV(path)
	if err != nil {
		return nil, err
	}

	var res []Replacement
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		res = append(res, Replacement{From: row[0], To: row[1:]})
	}
	return res, nil
}
