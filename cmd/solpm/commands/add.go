package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/internal/project"
	"github.com/0xsouravm/solpm/manifest"
)

var (
	addDev     bool
	addPath    string
	addNetwork string
	addCodegen bool
)

// AddCmd adds one program dependency to the project.
var AddCmd = &cobra.Command{
	Use:     "add <package>",
	Aliases: []string{"a"},
	Short:   "Add a program dependency to the current project",
	Long: `Add a Solana program dependency to the current project.

The package is fetched from the registry, its IDL saved locally, and
SolanaPrograms.json updated. A bare name resolves to the latest
published version; name@version pins a release.

Examples:
  solpm add feedana
  solpm add feedana@0.1.0 --dev
  solpm add feedana --network mainnet --codegen
  solpm add feedana --path ./custom/idl/feedana.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	AddCmd.Flags().BoolVar(&addDev, "dev", false, "Add as development dependency")
	AddCmd.Flags().StringVar(&addPath, "path", "", "Custom path for the IDL file")
	AddCmd.Flags().StringVar(&addNetwork, "network", "devnet", "Target network to fetch from (mainnet or devnet)")
	AddCmd.Flags().BoolVar(&addCodegen, "codegen", false, "Generate TypeScript client code after adding the program")
}

func runAdd(cmd *cobra.Command, args []string) error {
	spec, err := manifest.ParsePackageSpec(args[0])
	if err != nil {
		return err
	}
	if err := validNetwork(addNetwork); err != nil {
		return err
	}

	lock, err := manifest.LoadLockFile()
	if err != nil {
		if !errors.IsConfigNotFound(err) {
			return err
		}
		lock = manifest.NewLockFile()
	}

	// Skip the registry round-trip when the dependency is already
	// recorded in the requested section.
	if _, exists := lock.Programs[spec.Name]; exists && !addDev {
		pterm.Warning.Printfln("Program %s already exists as dependency. Skipping.", spec.Name)
		return nil
	}
	if _, exists := lock.DevPrograms[spec.Name]; exists && addDev {
		pterm.Warning.Printfln("Program %s already exists as dev dependency. Skipping.", spec.Name)
		return nil
	}

	spinner, _ := pterm.DefaultSpinner.Start("Installing " + spec.String() + " from " + addNetwork + "...")

	response, err := registryClient().Install(spec.Name, spec.Version, addNetwork, project.Hash())
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Stop()

	idlPath := addPath
	if idlPath == "" {
		idlPath = filepath.Join(manifest.IDLDir, spec.Name+".json")
	}
	if err := writeIDLFile(idlPath, response.IDL); err != nil {
		return err
	}

	lock.Add(spec.Name, manifest.Program{
		Version:   response.Version,
		ProgramID: response.ProgramID,
		Network:   addNetwork,
		IDLPath:   idlPath,
	}, addDev)
	if err := lock.Save(); err != nil {
		return err
	}

	dependencyType := "dependency"
	if addDev {
		dependencyType = "dev dependency"
	}
	pterm.Success.Printfln("Added %s %s as %s", spec.Name, response.Version, dependencyType)

	if addCodegen {
		pterm.Info.Println("Generating TypeScript client code...")
		if err := runCodegenAll(); err != nil {
			pterm.Warning.Printfln("Failed to generate TypeScript client: %v", err)
		}
	}

	return nil
}

// writeIDLFile stores an IDL document pretty-printed at the given
// path, creating parent directories as needed.
func writeIDLFile(path string, document json.RawMessage) error {
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(errors.ErrInvalidPath, "failed to create directory %s: %v", parent, err)
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, document, "", "  "); err != nil {
		return errors.Wrap(err, "formatting IDL")
	}
	if err := os.WriteFile(path, pretty.Bytes(), 0644); err != nil {
		return errors.Wrapf(errors.ErrInvalidPath, "failed to write IDL file %s: %v", path, err)
	}
	return nil
}
