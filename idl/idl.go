// Package idl models Anchor IDL documents — the JSON schema describing a
// Solana program's instructions, accounts, and PDA seed rules.
//
// The model tolerates both account-role naming conventions found in the
// wild: the current `writable`/`signer` fields and the legacy
// `isMut`/`isSigner` fields. Unknown seed kinds and argument types are
// accepted at parse time and surfaced when they are encoded, so a schema
// is only rejected up front for structural problems (bad JSON, missing
// instruction list, unnamed accounts or arguments).
package idl

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/0xsouravm/solpm/errors"
)

// SeedKind tags the three recognized PDA seed variants. Anything else in
// a schema is an error, reported by the seed resolver rather than the
// parser.
type SeedKind string

const (
	// SeedKindConst is a literal byte sequence embedded in the derivation
	SeedKindConst SeedKind = "const"
	// SeedKindAccount sources the seed from an account address
	SeedKindAccount SeedKind = "account"
	// SeedKindArg sources the seed from an instruction argument
	SeedKindArg SeedKind = "arg"
)

// Idl is a parsed IDL document. Only Instructions drive code generation;
// the remaining sections are carried as raw JSON so the document can be
// re-serialized without loss.
type Idl struct {
	Address      string            `json:"address,omitempty"`
	Metadata     *Metadata         `json:"metadata,omitempty"`
	Instructions []Instruction     `json:"instructions"`
	Accounts     []json.RawMessage `json:"accounts,omitempty"`
	Events       []json.RawMessage `json:"events,omitempty"`
	Errors       []json.RawMessage `json:"errors,omitempty"`
	Types        []json.RawMessage `json:"types,omitempty"`
}

// Metadata describes the program an IDL belongs to.
type Metadata struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Spec        string `json:"spec,omitempty"`
	Description string `json:"description,omitempty"`
}

// Instruction is one callable operation. Account and argument order is
// schema order and must not be rearranged: argument order is both the
// call-site parameter order and the on-chain encoding order.
type Instruction struct {
	Name     string    `json:"name"`
	Accounts []Account `json:"accounts"`
	Args     []Arg     `json:"args"`
}

// Account is one named account slot required by an instruction.
type Account struct {
	Name string `json:"name"`

	// Current field names
	Writable *bool `json:"writable,omitempty"`
	Signer   *bool `json:"signer,omitempty"`

	// Legacy field names, honored when the current ones are absent
	LegacyMut    *bool `json:"isMut,omitempty"`
	LegacySigner *bool `json:"isSigner,omitempty"`

	Address string `json:"address,omitempty"`
	PDA     *PDA   `json:"pda,omitempty"`
}

// IsWritable reports whether the account is writable, preferring the
// current `writable` field over the legacy `isMut` field. Defaults to
// false when neither is present.
func (a *Account) IsWritable() bool {
	if a.Writable != nil {
		return *a.Writable
	}
	if a.LegacyMut != nil {
		return *a.LegacyMut
	}
	return false
}

// IsSigner reports whether the account must sign, with the same
// precedence rule as IsWritable.
func (a *Account) IsSigner() bool {
	if a.Signer != nil {
		return *a.Signer
	}
	if a.LegacySigner != nil {
		return *a.LegacySigner
	}
	return false
}

// PDA is a derived-address specification. Seed order is derivation
// order; reordering changes the resulting address.
type PDA struct {
	Seeds []Seed `json:"seeds"`
}

// Seed is one byte-producing component of a PDA derivation.
type Seed struct {
	Kind    SeedKind  `json:"kind"`
	Value   ByteValue `json:"value,omitempty"`
	Path    string    `json:"path,omitempty"`
	Account string    `json:"account,omitempty"`
}

// ByteValue is a const-seed literal. Anchor emits these as JSON arrays
// of numbers ([118, 97, 117, 108, 116]), which encoding/json does not
// decode into []byte on its own.
type ByteValue []byte

// UnmarshalJSON decodes either a JSON number array or a plain string
// (some hand-written IDLs use the latter).
func (b *ByteValue) UnmarshalJSON(data []byte) error {
	var nums []int
	if err := json.Unmarshal(data, &nums); err == nil {
		out := make([]byte, len(nums))
		for i, n := range nums {
			if n < 0 || n > 255 {
				return errors.Newf("const seed byte out of range: %d", n)
			}
			out[i] = byte(n)
		}
		*b = out
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = []byte(s)
		return nil
	}

	return errors.New("const seed value must be a byte array or string")
}

// MarshalJSON re-encodes the literal as a number array, matching the
// Anchor representation.
func (b ByteValue) MarshalJSON() ([]byte, error) {
	nums := make([]int, len(b))
	for i, v := range b {
		nums[i] = int(v)
	}
	return json.Marshal(nums)
}

// IsUTF8 reports whether the literal is printable as a UTF-8 string.
func (b ByteValue) IsUTF8() bool {
	return utf8.Valid(b)
}

// Arg is one instruction argument. The type descriptor is either a bare
// type-name string or a structured form; TypeString collapses both into
// a single string for encoding-rule lookup.
type Arg struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// TypeString returns the argument's type as a flat string.
//
// Recognized structured forms: {"option": "u64"} → "option_u64" and
// {"defined": "MyType"} → "defined_MyType". Structured forms that do
// not match a known shape resolve to "unknown".
func (a *Arg) TypeString() string {
	var s string
	if err := json.Unmarshal(a.Type, &s); err == nil {
		return s
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(a.Type, &obj); err == nil {
		if inner, ok := obj["option"]; ok {
			return "option_" + innerTypeName(inner)
		}
		if inner, ok := obj["defined"]; ok {
			return "defined_" + innerTypeName(inner)
		}
	}

	return "unknown"
}

// innerTypeName extracts a type name from a structured type component,
// which is a string in most schemas but {"name": "..."} in newer ones.
func innerTypeName(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &named); err == nil && named.Name != "" {
		return named.Name
	}
	return "unknown"
}

// Parse decodes an IDL document and checks its structural requirements:
// the instruction list must be present and every account and argument
// must be named (arguments also need a type descriptor). All deeper
// validation — seed kinds, argument types — happens lazily when the
// construct is encoded.
func Parse(data []byte) (*Idl, error) {
	var doc Idl
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidIDL, err.Error())
	}

	if doc.Instructions == nil {
		return nil, errors.NewInvalidIDLError("missing instruction list")
	}

	for _, ix := range doc.Instructions {
		if ix.Name == "" {
			return nil, errors.NewInvalidIDLError("instruction with empty name")
		}
		for _, acc := range ix.Accounts {
			if acc.Name == "" {
				return nil, errors.NewInvalidIDLError("instruction %q has an unnamed account", ix.Name)
			}
		}
		for _, arg := range ix.Args {
			if arg.Name == "" {
				return nil, errors.NewInvalidIDLError("instruction %q has an unnamed argument", ix.Name)
			}
			if len(arg.Type) == 0 {
				return nil, errors.NewInvalidIDLError("argument %q of instruction %q has no type", arg.Name, ix.Name)
			}
		}
	}

	return &doc, nil
}

// FindArg looks up an instruction argument by name. Returns nil when the
// name does not match any argument.
func (ix *Instruction) FindArg(name string) *Arg {
	for i := range ix.Args {
		if ix.Args[i].Name == name {
			return &ix.Args[i]
		}
	}
	return nil
}
