// Package commands implements the solpm CLI surface: project
// initialization, dependency management, client code generation, and
// registry authentication and publishing.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/logger"
	"github.com/0xsouravm/solpm/registry"
)

var verbose bool

// RootCmd is the solpm entry command.
var RootCmd = &cobra.Command{
	Use:   "solpm",
	Short: "A Solana program manager for anchor program publishing and management",
	Long: `Solana Program Manager (solpm) helps you publish your own Solana programs,
install published programs as dependencies, and generate TypeScript clients.

Available commands:
  init     - Initialize a new Solana project with package configuration
  add      - Add a program dependency to the current project
  install  - Install all program dependencies from SolanaPrograms.json
  codegen  - Generate TypeScript client code for installed programs
  login    - Authenticate with a Registry API token
  logout   - Clear stored registry credentials
  publish  - Publish your program to the registry

Examples:
  solpm init --network devnet
  solpm add feedana@0.1.0 --codegen
  solpm install --codegen
  solpm publish`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(false, verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		printBanner()
		cmd.Help()
	},
}

func init() {
	cobra.EnableCommandSorting = false

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(AddCmd)
	RootCmd.AddCommand(InstallCmd)
	RootCmd.AddCommand(CodegenCmd)
	RootCmd.AddCommand(LoginCmd)
	RootCmd.AddCommand(LogoutCmd)
	RootCmd.AddCommand(PublishCmd)
	RootCmd.AddCommand(VersionCmd)
}

// registryClient builds the client used by every networked command.
// SOLPM_REGISTRY_URL overrides the hosted registry, which is how the
// tool is pointed at staging or a local registry.
func registryClient() *registry.Client {
	return registry.NewClient(os.Getenv("SOLPM_REGISTRY_URL"))
}

// Execute runs the root command.
func Execute() error {
	defer logger.Cleanup()
	return RootCmd.Execute()
}
