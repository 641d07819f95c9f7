// Package main provides the nwr CLI application.
// nwr works with NCBI taxonomy, Newick trees and distance matrices.
package main

import "github.com/gnames/nwr/cmd"

func main() {
	cmd.Execute()
}
