package commands

import (
	"os"
	"path/filepath"

	"github.com/0xsouravm/solpm/errors"
)

// idlSearchPaths are the directories Anchor and solana tooling write
// IDL files to, in the order they are searched.
var idlSearchPaths = []string{"target/idl", "idl", "target/deploy"}

// findIDLFile returns the first .json file found in the standard IDL
// output directories.
func findIDLFile() (string, error) {
	for _, dir := range idlSearchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", errors.Wrap(errors.ErrInvalidPath,
		"no IDL file found. Please build/deploy your program first. Searched paths: target/idl, idl, target/deploy")
}

// validNetwork checks a --network flag value.
func validNetwork(network string) error {
	switch network {
	case "mainnet", "devnet":
		return nil
	default:
		return errors.Newf("invalid network %q: must be mainnet or devnet", network)
	}
}
