package commands

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/0xsouravm/solpm/codegen"
	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/idl"
	"github.com/0xsouravm/solpm/logger"
	"github.com/0xsouravm/solpm/manifest"
)

// CodegenCmd regenerates TypeScript clients for every installed
// program.
var CodegenCmd = &cobra.Command{
	Use:     "codegen",
	Aliases: []string{"gen"},
	Short:   "Generate TypeScript client code for installed programs",
	Long: `Generate TypeScript client code for all programs in SolanaPrograms.json.

For each installed program this reads its IDL file and writes a
{ProgramName}Client.ts file under program/client/ containing PDA
derivation helpers and one wrapper function per instruction.

Examples:
  solpm codegen
  solpm gen`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCodegenAll()
	},
}

// runCodegenAll is the generation entry point shared with add and
// install. Programs are processed in deterministic order; a failure in
// one program's schema is reported and the batch moves on, so a single
// bad IDL cannot block regenerating every other client.
func runCodegenAll() error {
	lock, err := manifest.LoadLockFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(manifest.ClientDir, 0755); err != nil {
		return errors.Wrap(err, "creating client directory")
	}

	pterm.DefaultSection.Println("TypeScript Client Generation")

	generated := 0
	for _, entry := range lock.All() {
		idlPath := entry.Program.IDLFilePath(entry.Name)
		if _, err := os.Stat(idlPath); err != nil {
			return errors.Wrapf(errors.ErrInvalidPath,
				"IDL file not found for '%s': %s\nRun 'solpm install' to fetch missing IDL files.",
				entry.Name, idlPath)
		}

		pterm.Info.Printfln("Generating client for %s (%s) from %s...",
			entry.Name, entry.Program.Network, idlPath)

		clientPath, err := generateClient(entry.Name, entry.Program)
		if err != nil {
			pterm.Error.Printfln("Failed to generate client for %s: %v", entry.Name, err)
			logger.Errorw("client generation failed", "program", entry.Name, "error", err)
			continue
		}

		generated++
		pterm.Success.Printfln("Generated %s", clientPath)
	}

	if generated == 0 {
		pterm.Warning.Println("No client files generated. Make sure IDL files are available.")
	} else {
		pterm.Success.Printfln("Generated %d client%s!", generated, plural(generated))
	}

	return nil
}

// generateClient renders one program's client and writes it out. The
// file is only written when generation succeeds, so a failure never
// leaves a truncated client behind.
func generateClient(name string, program manifest.Program) (string, error) {
	data, err := os.ReadFile(program.IDLFilePath(name))
	if err != nil {
		return "", errors.Wrap(err, "reading IDL")
	}

	doc, err := idl.Parse(data)
	if err != nil {
		return "", err
	}

	code, err := codegen.Generate(doc, name, codegen.ProgramInfo{
		ProgramID: program.ProgramID,
		Network:   program.Network,
		IDLPath:   program.IDLPath,
	})
	if err != nil {
		return "", err
	}

	clientPath := filepath.Join(manifest.ClientDir, codegen.ClientFileName(name))
	if err := os.WriteFile(clientPath, []byte(code), 0644); err != nil {
		return "", errors.Wrap(err, "writing client file")
	}
	return clientPath, nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
