package main

import (
	"os"

	"github.com/gridbill/gridbill/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
