package commands

import (
	"fmt"

	"github.com/pterm/pterm"
)

// printBanner prints the solpm ASCII art banner, falling back to plain
// text when the terminal has no color support.
func printBanner() {
	if !pterm.PrintColor {
		fmt.Println("solpm - Solana Program Manager")
		return
	}

	pterm.FgCyan.Println(`
            _
  ___  ___ | |_ __  _ __
 / __|/ _ \| |  _ \| '  \
 \__ \ (_) | | |_) | | | |
 |___/\___/|_| .__/|_|_|_|
             |_|`)
	pterm.Bold.Println("  Solana Program Manager")
	fmt.Println()
}
