package iotaxdb

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/nwr/pkg/config"
	"github.com/gnames/nwr/pkg/taxon"
	"github.com/stretchr/testify/require"
)

func dmpRow(fields ...string) string {
	return strings.Join(fields, "\t|\t") + "\t|\n"
}

func nodeRow(id, parent, rank, div, comment string) string {
	return dmpRow(id, parent, rank, "", div, "1", "1", "1", "1", "1", "1", "0", comment)
}

var divisionDmp = dmpRow("0", "BCT", "Bacteria", "") +
	dmpRow("2", "MAM", "Mammals", "") +
	dmpRow("5", "PRI", "Primates", "") +
	dmpRow("8", "UNA", "Unassigned", "No species nodes should inherit this division assignment") +
	dmpRow("9", "VRL", "Viruses", "")

var nodesDmp = nodeRow("1", "1", "no rank", "8", "") +
	nodeRow("131567", "1", "no rank", "8", "") +
	nodeRow("2759", "131567", "superkingdom", "8", "") +
	nodeRow("9604", "2759", "family", "5", "") +
	nodeRow("9605", "9604", "genus", "5", "") +
	nodeRow("9606", "9605", "species", "5", "code compliant") +
	nodeRow("9596", "9604", "genus", "5", "") +
	nodeRow("9598", "9596", "species", "5", "") +
	nodeRow("10239", "1", "superkingdom", "9", "") +
	nodeRow("12333", "10239", "no rank", "9", "") +
	nodeRow("12340", "12333", "species", "9", "")

var namesDmp = dmpRow("1", "root", "", "scientific name") +
	dmpRow("131567", "cellular organisms", "", "scientific name") +
	dmpRow("2759", "Eukaryota", "", "scientific name") +
	dmpRow("2759", "eucaryotes", "", "genbank common name") +
	dmpRow("9604", "Hominidae", "", "scientific name") +
	dmpRow("9605", "Homo", "", "scientific name") +
	dmpRow("9606", "Homo sapiens", "", "scientific name") +
	dmpRow("9606", "human", "", "genbank common name") +
	dmpRow("9606", "Homo sapiens Linnaeus, 1758", "", "authority") +
	dmpRow("9596", "Pan", "", "scientific name") +
	dmpRow("9598", "Pan troglodytes", "", "scientific name") +
	dmpRow("9598", "chimpanzee", "", "genbank common name") +
	dmpRow("9598", "Simia troglodytes", "", "synonym") +
	dmpRow("10239", "Viruses", "", "scientific name") +
	dmpRow("12333", "unclassified bacterial viruses", "", "scientific name") +
	dmpRow("12340", "Enterobacteria phage 933J", "", "scientific name")

// writeDumps creates NCBI dump files in a temporary directory.
func writeDumps(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		divisionFile: divisionDmp,
		nodesFile:    nodesDmp,
		namesFile:    namesDmp,
	}
	for k, v := range files {
		err := os.WriteFile(filepath.Join(dir, k), []byte(v), 0644)
		require.NoError(t, err)
	}
	return dir
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptWithProgressBar(false),
		config.OptBatchSize(2),
	})
	return cfg
}

// buildStore ingests test dumps and opens the resulting store.
func buildStore(t *testing.T) (taxon.Store, string) {
	t.Helper()
	dir := writeDumps(t)
	err := NewBuilder(testConfig()).Build(context.Background(), dir)
	require.NoError(t, err)

	st, err := Open(config.StorePath(dir))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st, dir
}
