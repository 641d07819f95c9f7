// Package nwr is a toolkit for phylogenomic workflows: a local cache of the
// NCBI taxonomy, transformations of Newick trees and utilities for PHYLIP
// distance matrices.
package nwr

var (
	// Version of nwr, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
