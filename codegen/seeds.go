package codegen

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/idl"
	"github.com/0xsouravm/solpm/logger"
)

// ResolveSeeds turns one PDA's ordered seed list into the parameters its
// derivation function needs and the Buffer-construction expression for
// each seed, in seed order.
//
// The parameter list preserves first-occurrence order and never repeats
// a name, no matter how many seeds reference the same parameter. Const
// seeds contribute no parameter. An unrecognized seed kind aborts the
// whole spec with an invalid-IDL error; no partial result is returned.
func ResolveSeeds(seeds []idl.Seed, ix *idl.Instruction) (params []string, buffers []string, err error) {
	for _, seed := range seeds {
		switch seed.Kind {
		case idl.SeedKindConst:
			buffers = append(buffers, fmt.Sprintf("Buffer.from('%s')", constSeedString(seed.Value)))

		case idl.SeedKindAccount:
			// Only the final path segment names the parameter; the full
			// dotted path ("feedback_board.creator") is otherwise unused.
			param := lastPathSegment(seed.Path)
			params = appendUnique(params, param)
			// Account references are always addresses, so raw bytes come
			// from .toBuffer() regardless of origin.
			buffers = append(buffers, param+".toBuffer()")

		case idl.SeedKindArg:
			param := seed.Path
			params = appendUnique(params, param)

			argType := "string"
			if arg := ix.FindArg(param); arg != nil {
				argType = arg.TypeString()
			} else {
				// Fallback path: the schema points at an argument that
				// does not exist. Degrade to string encoding but flag it.
				logger.Warnw("arg seed does not match any instruction argument",
					"instruction", ix.Name,
					"path", seed.Path)
			}
			buffers = append(buffers, argBuffer(param, argType))

		default:
			return nil, nil, errors.NewInvalidIDLError("unknown seed kind: %s", seed.Kind)
		}
	}

	return params, buffers, nil
}

// argBuffer selects the Buffer-construction expression for an arg seed
// based on the argument's declared type.
func argBuffer(param, argType string) string {
	switch argType {
	case "string":
		return fmt.Sprintf("Buffer.from(%s)", param)
	case "u8":
		return fmt.Sprintf("Buffer.from([%s])", param)
	case "u16":
		return fmt.Sprintf("Buffer.from(new Uint16Array([%s]))", param)
	case "u32":
		return fmt.Sprintf("Buffer.from(new Uint32Array([%s]))", param)
	case "u64", "i64":
		return fmt.Sprintf("Buffer.from(new anchor.BN(%s).toArray('le', 8))", param)
	case "i8":
		// Two's-complement adjustment for negative values
		return fmt.Sprintf("Buffer.from([%s < 0 ? %s + 256 : %s])", param, param, param)
	case "i16":
		return fmt.Sprintf("Buffer.from(new Int16Array([%s]))", param)
	case "i32":
		return fmt.Sprintf("Buffer.from(new Int32Array([%s]))", param)
	case "bool":
		return fmt.Sprintf("Buffer.from([%s ? 1 : 0])", param)
	case "bytes", "Vec<u8>":
		return fmt.Sprintf("Buffer.from(%s)", param)
	case "publicKey", "pubkey", "Pubkey", "PublicKey":
		return param + ".toBuffer()"
	default:
		// Best-effort numeric fallback for integer widths the table
		// doesn't name explicitly.
		if strings.HasPrefix(argType, "u") || strings.HasPrefix(argType, "i") {
			return fmt.Sprintf("Buffer.from(new Uint32Array([%s]))", param)
		}
		// Unrecognized type: emit a pass-through buffer flagged for
		// manual review rather than guessing silently.
		return fmt.Sprintf("Buffer.from(%s) // TODO: Verify type handling for '%s'", param, argType)
	}
}

// constSeedString renders a const-seed literal as UTF-8 when possible,
// hex otherwise.
func constSeedString(value idl.ByteValue) string {
	if value.IsUTF8() {
		return string(value)
	}
	return "0x" + hex.EncodeToString(value)
}

// lastPathSegment returns the final component of a dotted account path:
// "feedback_board.creator" → "creator", "creator" → "creator".
func lastPathSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
