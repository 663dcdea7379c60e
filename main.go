package main

import (
	"os"

	"github.com/amar-at-iitm/primer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
