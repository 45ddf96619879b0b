package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/auth"
)

// LogoutCmd removes stored registry credentials.
var LogoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"lo"},
	Short:   "Clear stored registry credentials",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := auth.Delete()
		if err != nil {
			return err
		}
		if removed {
			pterm.Success.Println("Successfully logged out")
		} else {
			pterm.Info.Println("Already logged out")
		}
		return nil
	},
}
