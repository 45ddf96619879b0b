// Package codegen turns parsed Anchor IDL documents into TypeScript
// client source. Output is fully deterministic for a given schema:
// instruction functions follow schema order, PDA helpers follow first
// appearance, and no maps are iterated during emission.
package codegen

import (
	"fmt"
	"strings"

	"github.com/0xsouravm/solpm/idl"
)

// RPC endpoints baked into generated clients.
const (
	MainnetRPCURL = "https://api.mainnet-beta.solana.com"
	DevnetRPCURL  = "https://api.devnet.solana.com"
)

// SystemProgramID is the well-known system program address. Accounts
// fixed to it are bound symbolically in generated code instead of as a
// raw address literal.
const SystemProgramID = "11111111111111111111111111111111"

// ProgramInfo carries the per-program settings the generator needs:
// the deployed address, the target network, and an optional custom IDL
// location. IDLPath is the path as written in the lockfile; an empty
// string means the conventional program/idl/<name>.json location.
type ProgramInfo struct {
	ProgramID string
	Network   string
	IDLPath   string
}

// Generate renders the complete TypeScript client for one program. The
// result is the whole file content; callers own writing it to disk, so
// a generation failure never leaves a partial file behind.
func Generate(doc *idl.Idl, programName string, info ProgramInfo) (string, error) {
	var code strings.Builder

	writePreamble(&code, programName, info)

	if err := writePDAFunctions(&code, doc); err != nil {
		return "", err
	}

	for i := range doc.Instructions {
		if err := writeInstructionFunction(&code, &doc.Instructions[i]); err != nil {
			return "", err
		}
	}

	return code.String(), nil
}

// ClientFileName returns the output file name for a program's client:
// "counter_program" → "CounterProgramClient.ts".
func ClientFileName(programName string) string {
	return ToPascalCase(programName) + "Client.ts"
}

// writePreamble emits imports, the program ID constant, the network
// connection, and the getProgram helper.
func writePreamble(code *strings.Builder, programName string, info ProgramInfo) {
	code.WriteString("import * as anchor from '@coral-xyz/anchor';\n")
	code.WriteString("import { Connection, PublicKey } from '@solana/web3.js';\n")
	fmt.Fprintf(code, "import idl from '%s';\n\n", idlImportPath(programName, info.IDLPath))

	code.WriteString("// Your deployed program ID\n")
	fmt.Fprintf(code, "const PROGRAM_ID = new PublicKey('%s');\n\n", info.ProgramID)

	var networkComment, rpcURL string
	switch info.Network {
	case "mainnet":
		networkComment, rpcURL = "// Mainnet connection", MainnetRPCURL
	case "devnet":
		networkComment, rpcURL = "// Devnet connection", DevnetRPCURL
	default:
		networkComment, rpcURL = "// Unknown network, defaulting to devnet", DevnetRPCURL
	}
	fmt.Fprintf(code, "%s\n", networkComment)
	fmt.Fprintf(code, "const connection = new Connection('%s', 'confirmed');\n\n", rpcURL)

	code.WriteString("// Get program instance\n")
	code.WriteString("const getProgram = (wallet) => {\n")
	code.WriteString("  const provider = new anchor.AnchorProvider(connection, wallet, {\n")
	code.WriteString("    commitment: 'confirmed',\n")
	code.WriteString("  });\n")
	code.WriteString("  \n")
	code.WriteString("  return new anchor.Program(idl, provider);\n")
	code.WriteString("};\n\n")
}

// idlImportPath resolves the import specifier for the schema file,
// relative to the generated client's location under program/client/.
func idlImportPath(programName, custom string) string {
	if custom == "" {
		return fmt.Sprintf("../idl/%s.json", programName)
	}
	switch {
	case strings.HasPrefix(custom, "./"):
		return "../../" + custom[2:]
	case strings.HasPrefix(custom, "/"):
		return custom
	default:
		return "../../" + custom
	}
}

// writePDAFunctions emits one exported derivation helper per distinct
// PDA account name, scanning instructions and accounts in schema order.
// A name is generated once; later accounts with the same name are
// assumed to describe the same derivation and are skipped.
func writePDAFunctions(code *strings.Builder, doc *idl.Idl) error {
	generated := make(map[string]bool)

	for i := range doc.Instructions {
		ix := &doc.Instructions[i]
		for j := range ix.Accounts {
			account := &ix.Accounts[j]
			if account.PDA == nil || generated[account.Name] {
				continue
			}
			generated[account.Name] = true

			params, buffers, err := ResolveSeeds(account.PDA.Seeds, ix)
			if err != nil {
				return err
			}

			fmt.Fprintf(code, "// Get %s PDA\n", account.Name)
			fmt.Fprintf(code, "export const get%sPDA = (%s) => {\n",
				ToPascalCase(account.Name), strings.Join(params, ", "))
			code.WriteString("  return PublicKey.findProgramAddressSync(\n")
			code.WriteString("    [\n")
			for _, buffer := range buffers {
				fmt.Fprintf(code, "      %s,\n", buffer)
			}
			code.WriteString("    ],\n")
			code.WriteString("    PROGRAM_ID\n")
			code.WriteString("  );\n")
			code.WriteString("};\n\n")
		}
	}

	return nil
}

// writeInstructionFunction emits the async wrapper for one instruction:
// PDA derivations, the program.methods call with the accounts object,
// and the return value.
func writeInstructionFunction(code *strings.Builder, ix *idl.Instruction) error {
	functionName := ToCamelCase(ix.Name)

	fmt.Fprintf(code, "// %s on-chain\n", functionName)
	fmt.Fprintf(code, "export const %s = async (wallet", functionName)

	// Signature: wallet, then instruction args in schema order, then any
	// PDA seed parameters not already covered. "creator" is never a
	// parameter; it is bound to the caller's wallet below.
	allParams := make([]string, 0, len(ix.Args))
	for _, arg := range ix.Args {
		allParams = append(allParams, arg.Name)
	}
	for i := range ix.Accounts {
		if ix.Accounts[i].PDA == nil {
			continue
		}
		pdaParams, _, err := ResolveSeeds(ix.Accounts[i].PDA.Seeds, ix)
		if err != nil {
			return err
		}
		for _, param := range pdaParams {
			if param != "creator" {
				allParams = appendUnique(allParams, param)
			}
		}
	}
	for _, param := range allParams {
		fmt.Fprintf(code, ", %s", param)
	}

	code.WriteString(") => {\n")
	code.WriteString("  const program = getProgram(wallet);\n")

	// Derive every PDA account up front; remember name→variable so the
	// accounts object can reference the derived addresses.
	type pdaBinding struct {
		account  string
		variable string
	}
	var pdaVars []pdaBinding
	for i := range ix.Accounts {
		account := &ix.Accounts[i]
		if account.PDA == nil {
			continue
		}
		pdaParams, _, err := ResolveSeeds(account.PDA.Seeds, ix)
		if err != nil {
			return err
		}
		callParams := make([]string, 0, len(pdaParams))
		for _, param := range pdaParams {
			if param == "creator" {
				callParams = append(callParams, "wallet.publicKey")
			} else {
				callParams = append(callParams, param)
			}
		}

		variable := ToCamelCase(account.Name) + "Pda"
		fmt.Fprintf(code, "  const [%s] = get%sPDA(%s);\n",
			variable, ToPascalCase(account.Name), strings.Join(callParams, ", "))
		pdaVars = append(pdaVars, pdaBinding{account: account.Name, variable: variable})
	}

	code.WriteString("  \n")
	code.WriteString("  const tx = await program.methods\n")
	fmt.Fprintf(code, "    .%s(", ToCamelCase(ix.Name))
	for i, arg := range ix.Args {
		if i > 0 {
			code.WriteString(", ")
		}
		code.WriteString(arg.Name)
	}
	code.WriteString(")\n")
	code.WriteString("    .accounts({\n")

	for i := range ix.Accounts {
		account := &ix.Accounts[i]
		camel := ToCamelCase(account.Name)

		writableComment := ""
		if account.IsWritable() {
			writableComment = " // writable"
		}
		signerComment := ""
		if account.IsSigner() {
			signerComment = " // signer"
		}

		pdaVar := ""
		for _, binding := range pdaVars {
			if binding.account == account.Name {
				pdaVar = binding.variable
				break
			}
		}

		switch {
		case pdaVar != "":
			fmt.Fprintf(code, "      %s: %s,%s%s  \n", camel, pdaVar, writableComment, signerComment)
		case account.IsSigner():
			fmt.Fprintf(code, "      %s: wallet.publicKey,%s%s\n", camel, writableComment, signerComment)
		case account.Address == SystemProgramID:
			fmt.Fprintf(code, "      %s: anchor.web3.SystemProgram.programId,%s%s\n", camel, writableComment, signerComment)
		case account.Address != "":
			fmt.Fprintf(code, "      %s: new PublicKey('%s'),%s%s\n", camel, account.Address, writableComment, signerComment)
		default:
			fmt.Fprintf(code, "      %s: %s, // TODO: Add proper account%s%s\n", camel, camel, writableComment, signerComment)
		}
	}

	code.WriteString("    })\n")
	code.WriteString("    .rpc();\n")
	code.WriteString("    \n")

	if len(pdaVars) == 0 {
		code.WriteString("  return tx;\n")
	} else {
		fmt.Fprintf(code, "  return { tx, pda: %s };\n", pdaVars[0].variable)
	}

	code.WriteString("};\n\n")

	return nil
}
