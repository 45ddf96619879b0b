package commands

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/manifest"
	"github.com/0xsouravm/solpm/registry"
	"github.com/0xsouravm/solpm/solana"
)

var publishKeypair string

// PublishCmd uploads the project's program to the registry.
var PublishCmd = &cobra.Command{
	Use:     "publish",
	Aliases: []string{"p"},
	Short:   "Publish program to the registry",
	Long: `Publish the program described by SolanaPrograms.toml to the registry.

The upload includes the program's IDL and a challenge signed with the
authority keypair, proving control of the program being published.
Requires a prior 'solpm login'.

Examples:
  solpm publish
  solpm publish --authority-keypair ./path/to/keypair.json`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	PublishCmd.Flags().StringVar(&publishKeypair, "authority-keypair", "", "Path to the authority keypair file (default: authority_keypair from SolanaPrograms.toml)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	client := registryClient()

	token, err := ensureAuthenticated(client)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Reading " + manifest.ConfigFileName + "...")
	config, err := manifest.LoadConfig()
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Stop()

	if err := config.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(config.Program.Description) == "" {
		return errors.Wrap(errors.ErrDataMissing,
			"description is required. Please fill in the 'description' field in "+manifest.ConfigFileName)
	}
	if strings.TrimSpace(config.Program.Repository) == "" {
		return errors.Wrap(errors.ErrDataMissing,
			"repository is required. Please fill in the 'repository' field in "+manifest.ConfigFileName)
	}
	if err := solana.ValidateProgramID(config.Program.ProgramID); err != nil {
		return err
	}

	spinner, _ = pterm.DefaultSpinner.Start("Finding IDL file...")
	idlPath, err := findIDLFile()
	if err != nil {
		spinner.Fail()
		return err
	}
	idlData, err := os.ReadFile(idlPath)
	if err != nil {
		spinner.Fail()
		return errors.Wrapf(errors.ErrInvalidPath, "failed to read IDL file: %v", err)
	}
	if !json.Valid(idlData) {
		spinner.Fail()
		return errors.NewInvalidIDLError("invalid JSON in IDL file %s", idlPath)
	}
	spinner.Stop()

	keypairPath := strings.TrimSpace(publishKeypair)
	if keypairPath == "" {
		keypairPath = config.Program.AuthorityKeypair
	}
	spinner, _ = pterm.DefaultSpinner.Start("Loading authority keypair...")
	authority, err := solana.LoadKeypair(keypairPath)
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Stop()

	challenge := solana.PublishChallenge(config.Program.ProgramID, config.Program.Network, time.Now().Unix())

	pterm.Info.Printfln("Publishing %s %s to %s with authority %s...",
		config.Program.Name, config.Program.Version, config.Program.Network,
		solana.PublicKeyBase58(authority))

	spinner, _ = pterm.DefaultSpinner.Start("Publishing to registry...")
	err = client.Publish(&registry.UploadRequest{
		Name:            config.Program.Name,
		Version:         config.Program.Version,
		ProgramID:       config.Program.ProgramID,
		Network:         config.Program.Network,
		IDL:             json.RawMessage(idlData),
		Description:     config.Program.Description,
		Repository:      config.Program.Repository,
		Challenge:       challenge,
		Signature:       solana.SignChallenge(authority, challenge),
		AuthorityPubkey: solana.PublicKeyBase58(authority),
	}, token)
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Stop()

	pterm.Success.Printfln("Successfully published %s %s to %s",
		config.Program.Name, config.Program.Version, config.Program.Network)

	return nil
}
