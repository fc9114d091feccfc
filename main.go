package main

import (
	"os"

	"github.com/rtzll/tldr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
