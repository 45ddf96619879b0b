package commands

import (
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/idl"
	"github.com/0xsouravm/solpm/internal/project"
	"github.com/0xsouravm/solpm/manifest"
)

var initNetwork string

// InitCmd bootstraps SolanaPrograms.toml from the program's IDL.
var InitCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Initialize a new Solana project with package configuration",
	Long: `Initialize a Solana project for publishing.

Reads the program's IDL from the standard build locations (target/idl,
idl, target/deploy), extracts name, version, and program ID, detects
the GitHub repository from the git remote, and writes a
SolanaPrograms.toml manifest.

Examples:
  solpm init --network devnet
  solpm init --network mainnet`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	InitCmd.Flags().StringVar(&initNetwork, "network", "devnet", "Target network for the project (mainnet or devnet)")
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := validNetwork(initNetwork); err != nil {
		return err
	}

	if manifest.ConfigExists() {
		pterm.Warning.Printfln("%s already exists.", manifest.ConfigFileName)
		overwrite, _ := pterm.DefaultInteractiveConfirm.Show("Do you want to overwrite it?")
		if !overwrite {
			pterm.Info.Println("Initialization cancelled.")
			return nil
		}
	}

	pterm.Info.Println("Initializing Solana program configuration...")

	idlPath, err := findIDLFile()
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Found IDL file: %s", idlPath)

	data, err := os.ReadFile(idlPath)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidPath, "failed to read IDL file: %v", err)
	}

	var doc idl.Idl
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.NewInvalidIDLError("invalid JSON in IDL: %v", err)
	}
	if doc.Metadata == nil || doc.Metadata.Name == "" {
		return errors.NewInvalidIDLError("program name not found in IDL metadata")
	}
	if doc.Metadata.Version == "" {
		return errors.NewInvalidIDLError("program version not found in IDL metadata")
	}

	programID := doc.Address
	if programID == "" {
		programID = "PLACEHOLDER_PROGRAM_ID"
	}

	repository, found := project.RepositoryURL()
	if found {
		pterm.Success.Printfln("Detected GitHub repository: %s", repository)
	}

	config := &manifest.ProjectConfig{Program: manifest.ProgramConfig{
		Name:      doc.Metadata.Name,
		Version:   doc.Metadata.Version,
		ProgramID: programID,
		Network:   initNetwork,
		// Description left blank for the user to fill
		Repository:       repository,
		AuthorityKeypair: "~/.config/solana/id.json",
	}}
	if err := config.Save(); err != nil {
		return err
	}

	pterm.Success.Printfln("Created %s for %s network", manifest.ConfigFileName, initNetwork)
	if repository == "" {
		pterm.Info.Println("Please fill in the 'description' and 'repository' fields before publishing.")
	} else {
		pterm.Info.Println("Please fill in the 'description' field before publishing.")
	}

	return nil
}
