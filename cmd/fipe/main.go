package main

import (
	"os"

	"github.com/fipe-dev/fipe/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
