package main

import (
	"os"

	"github.com/Elias2660/bee-analysis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
