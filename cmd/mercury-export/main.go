package main

import (
	"os"

	"github.com/mercury-tools/mercury-export/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
