package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/internal/project"
	"github.com/0xsouravm/solpm/manifest"
)

var installCodegen bool

// InstallCmd fetches every dependency recorded in the lockfile.
var InstallCmd = &cobra.Command{
	Use:     "install",
	Aliases: []string{"in", "i"},
	Short:   "Install all program dependencies from SolanaPrograms.json",
	Long: `Install all program dependencies recorded in SolanaPrograms.json.

Dependencies whose IDL files already exist locally are skipped, so
repeated runs are cheap. Fetch failures for individual programs are
reported and the remaining dependencies are still installed.

Examples:
  solpm install
  solpm install --codegen`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	InstallCmd.Flags().BoolVar(&installCodegen, "codegen", false, "Generate TypeScript client code after installing programs")
}

func runInstall(cmd *cobra.Command, args []string) error {
	lock, err := manifest.LoadLockFile()
	if err != nil {
		return err
	}

	client := registryClient()
	installed := 0
	total := 0
	updated := false

	for _, entry := range lock.All() {
		total++
		program := entry.Program
		idlPath := program.IDLFilePath(entry.Name)

		if _, err := os.Stat(idlPath); err == nil {
			// Backfill the resolved path so codegen and later installs
			// agree on where the IDL lives.
			if program.IDLPath == "" {
				program.IDLPath = idlPath
				lock.Add(entry.Name, program, entry.Dev)
				updated = true
			}
			continue
		}

		pterm.Info.Printfln("Installing %s %s...", entry.Name, program.Version)

		response, err := client.Install(entry.Name, "", program.Network, project.Hash())
		if err != nil {
			pterm.Error.Printfln("Failed to fetch %s: %v", entry.Name, err)
			continue
		}

		if err := writeIDLFile(idlPath, response.IDL); err != nil {
			pterm.Error.Printfln("Failed to save IDL for %s: %v", entry.Name, err)
			continue
		}

		program.IDLPath = idlPath
		lock.Add(entry.Name, program, entry.Dev)
		updated = true
		installed++

		pterm.Success.Printfln("%s %s - installed successfully", entry.Name, program.Version)
	}

	if updated {
		if err := lock.Save(); err != nil {
			return err
		}
	}

	switch {
	case total == 0:
		pterm.Warning.Printfln("No programs found in %s", manifest.LockFileName)
	case installed == 0:
		pterm.Info.Printfln("Up to date, %d program%s installed", total, plural(total))
	default:
		pterm.Success.Printfln("Added %d program%s, %d program%s total",
			installed, plural(installed), total, plural(total))
	}

	if installCodegen {
		pterm.Info.Println("Generating TypeScript client code...")
		if err := runCodegenAll(); err != nil {
			pterm.Warning.Printfln("Failed to generate TypeScript client: %v", err)
		}
	}

	return nil
}
