package main

import (
	"os"

	"github.com/pocketledger-dev/pocketledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
