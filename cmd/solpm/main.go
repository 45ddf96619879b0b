package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/0xsouravm/solpm/cmd/solpm/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
