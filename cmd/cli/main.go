// Package main is the entry point for the querydog CLI binary.
package main

import (
	"os"

	cli "github.com/benjaminwootton/QueryDog-sub000/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
