package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupHome points HOME to a temporary directory, so bootstrap creates
// config and logs there.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NWR_WITH_PROGRESS_BAR", "false")
	return home
}

// writeInput saves content to a temporary file.
func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs nwr with the arguments and returns content written to
// the output file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.txt")
	cmd := getRootCmd()
	cmd.SetArgs(append(args, "-o", out))
	if err := cmd.Execute(); err != nil {
		return "", err
	}

	bs, err := os.ReadFile(out)
	require.NoError(t, err)
	return string(bs), nil
}

func TestTreeCommands(t *testing.T) {
	setupHome(t)

	tests := []struct {
		msg  string
		tree string
		args []string
		out  string
	}{
		{"order anr", "((A,B),C);",
			[]string{"ops", "order", "--anr"}, "(C,(B,A));\n"},
		{"rename lca", "((A,B),C);",
			[]string{"ops", "rename", "-n", "A,B", "-r", "AB"}, "((A,B)AB,C);\n"},
		{"prune", "((A,B)D,C);",
			[]string{"ops", "prune", "-n", "A", "-n", "B"}, "(C);\n"},
		{"prune without selection", "((A,B)D,C);",
			[]string{"ops", "prune", "-I"}, "((A,B)D,C);\n"},
		{"reroot", "((A:1,C:2)D:1,B:1)E;",
			[]string{"ops", "reroot", "-n", "B"}, "(B:0.5,(A:1,C:2)D:0.5);\n"},
		{"subtree monophyly", "(((A,B)X,C)Y,D)Z;",
			[]string{"ops", "subtree", "-n", "A", "-n", "B", "-M"}, "(A,B)X;\n"},
		{"subtree not monophyletic", "(((A,B)X,C)Y,D)Z;",
			[]string{"ops", "subtree", "-n", "A", "-n", "C", "-M"}, ""},
		{"subtree condense", "(((A,B)X,C)Y,D)Z;",
			[]string{"ops", "subtree", "-n", "A", "-n", "B", "--condense", "AB"},
			"((AB[member=2],C)Y,D)Z;\n"},
		{"topo", "((A:1,B:2)D:1,C:1[x])E;",
			[]string{"ops", "topo", "-I"}, "((A,B),C);\n"},
		{"label leaves", "((A,B)D,C)E;",
			[]string{"data", "label", "-I"}, "A\nB\nC\n"},
		{"label internal tab", "((A,B)D,C)E;",
			[]string{"data", "label", "-L", "--tab"}, "E\tD\n"},
		{"label regex", "((Homo,Pan)D,Mus)E;",
			[]string{"data", "label", "-r", "^(homo|mus)$"}, "Homo\nMus\n"},
		{"stat", "((A,B)D,C);",
			[]string{"data", "stat"},
			"nodes\t5\nleaves\t3\ndichotomies\t2\nleaf labels\t3\ninternal labels\t1\n"},
		{"stat line", "((A,B)D,C);\n(A,B,C);",
			[]string{"data", "stat", "--style", "line"},
			"nodes\tleaves\tdichotomies\tleaf labels\tinternal labels\n" +
				"5\t3\t2\t3\t1\n4\t3\t0\t3\t0\n"},
		{"distance root", "((A:1,B:2)D:3,C:4);",
			[]string{"data", "distance", "-m", "root", "-I"}, "A\t4\nB\t5\nC\t4\n"},
		{"distance pairwise", "((A:1,B:2)D:3,C:4);",
			[]string{"data", "distance", "-m", "pairwise", "-n", "A", "-n", "C"},
			"A\tC\t8\n"},
		{"distance phylip", "((A:1,B:2)D:3,C:4);",
			[]string{"data", "distance", "-m", "phylip"},
			"3\nA\t0\t3\t8\nB\t3\t0\t9\nC\t8\t9\t0\n"},
		{"indent", "(A,B);",
			[]string{"viz", "indent"}, "(\n  A,\n  B\n);\n"},
		{"comment", "((A,B),C);",
			[]string{"viz", "comment", "-n", "A", "--color", "red"},
			"((A[color=red],B),C);\n"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			in := writeInput(t, "tree.nwk", tt.tree)
			res, err := execute(t, append(tt.args, in)...)
			require.NoError(t, err)
			assert.Equal(t, tt.out, res)
		})
	}
}

func TestReplaceCommand(t *testing.T) {
	setupHome(t)
	in := writeInput(t, "tree.nwk", "((A,B)D,C);")
	reps := writeInput(t, "replace.tsv", "A\tX\nD\tY\textra\n")

	res, err := execute(t, "ops", "replace", in, reps)
	require.NoError(t, err)
	assert.Equal(t, "((X,B)Y[extra],C);\n", res)

	res, err = execute(t, "ops", "replace", in, reps, "-I")
	require.NoError(t, err)
	assert.Equal(t, "((X,B)D,C);\n", res)
}

func TestTreeCommandErrors(t *testing.T) {
	setupHome(t)
	bad := writeInput(t, "bad.nwk", "((A,B);")
	good := writeInput(t, "good.nwk", "(A,B);")

	_, err := execute(t, "ops", "order", "--an", bad)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.NewickParseError, gnErr.Code)

	_, err = execute(t, "data", "distance", "-m", "nowhere", good)
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CLIArgumentError, gnErr.Code)

	_, err = execute(t, "ops", "subtree", good)
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CLIArgumentError, gnErr.Code)

	_, err = execute(t, "data", "label", filepath.Join(t.TempDir(), "none.nwk"))
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}

func TestMatCommands(t *testing.T) {
	setupHome(t)
	phylip := writeInput(t, "m.phy", "3\nA\nB\t1\nC\t2\t3\n")
	pairs := writeInput(t, "pairs.tsv", "A\tB\t1\nA\tC\t2\nB\tC\t3\n")
	names := writeInput(t, "names.txt", "C\nA\nQ\n")

	full := "3\nA\t0\t1\t2\nB\t1\t0\t3\nC\t2\t3\t0\n"

	tests := []struct {
		msg  string
		args []string
		out  string
	}{
		{"to-phylip", []string{"mat", "to-phylip", pairs}, full},
		{"to-pair", []string{"mat", "to-pair", phylip}, "A\tB\t1\nA\tC\t2\nB\tC\t3\n"},
		{"format full", []string{"mat", "format", phylip}, full},
		{"format lower", []string{"mat", "format", "--mode", "lower", phylip},
			"3\nA\nB\t1\nC\t2\t3\n"},
		{"subset", []string{"mat", "subset", phylip, names},
			"2\nC\t0\t2\nA\t2\t0\n"},
		{"compare self", []string{"mat", "compare", phylip, phylip,
			"--method", "pearson,mae"},
			"pearson\t1.000000\nmae\t0.000000\n"},
		{"upgma", []string{"build", "upgma", phylip}, "((A:0.5,B:0.5):0.75,C:1.25);\n"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.out, res)
		})
	}
}

func TestMatSubsetMissing(t *testing.T) {
	setupHome(t)
	phylip := writeInput(t, "m.phy", "3\nA\nB\t1\nC\t2\t3\n")
	names := writeInput(t, "names.txt", "C\nQ\nA\n")

	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	res, err := execute(t, "mat", "subset", phylip, names)
	os.Stderr = old
	w.Close()
	require.NoError(t, err)

	bs, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "2\nC\t0\t2\nA\t2\t0\n", res)
	assert.Contains(t, string(bs), "is not in the matrix")
	assert.Contains(t, string(bs), "Q")
}

func TestNJRoundTrip(t *testing.T) {
	setupHome(t)
	in := writeInput(t, "tree.nwk", "((A:1,B:2):1,(C:3,D:4):1);")

	phylip, err := execute(t, "data", "distance", "-m", "phylip", in)
	require.NoError(t, err)

	mat := writeInput(t, "m.phy", phylip)
	tree, err := execute(t, "build", "nj", mat)
	require.NoError(t, err)

	// distances of the rebuilt tree are the same
	rebuilt := writeInput(t, "nj.nwk", tree)
	phylip2, err := execute(t, "data", "distance", "-m", "phylip", rebuilt)
	require.NoError(t, err)

	m1 := writeInput(t, "m1.phy", phylip)
	m2 := writeInput(t, "m2.phy", phylip2)
	res, err := execute(t, "mat", "compare", m1, m2, "--method", "mae")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res, "mae\t0.000000"), res)
}
