package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/idl"
)

func TestResolveSeedsConstAndArg(t *testing.T) {
	ix := &idl.Instruction{
		Name: "deposit",
		Args: []idl.Arg{{Name: "amount", Type: []byte(`"u64"`)}},
	}
	seeds := []idl.Seed{
		{Kind: idl.SeedKindConst, Value: idl.ByteValue("vault")},
		{Kind: idl.SeedKindArg, Path: "amount"},
	}

	params, buffers, err := ResolveSeeds(seeds, ix)
	require.NoError(t, err)

	assert.Equal(t, []string{"amount"}, params)
	assert.Equal(t, []string{
		"Buffer.from('vault')",
		"Buffer.from(new anchor.BN(amount).toArray('le', 8))",
	}, buffers)
}

func TestResolveSeedsAccountPathSegment(t *testing.T) {
	ix := &idl.Instruction{Name: "post_feedback"}
	seeds := []idl.Seed{
		{Kind: idl.SeedKindConst, Value: idl.ByteValue("feedback")},
		{Kind: idl.SeedKindAccount, Path: "feedback_board.creator"},
		{Kind: idl.SeedKindAccount, Path: "author"},
	}

	params, buffers, err := ResolveSeeds(seeds, ix)
	require.NoError(t, err)

	// Dotted paths contribute only their final segment as a parameter.
	assert.Equal(t, []string{"creator", "author"}, params)
	assert.Equal(t, "creator.toBuffer()", buffers[1])
	assert.Equal(t, "author.toBuffer()", buffers[2])
}

func TestResolveSeedsParamDedup(t *testing.T) {
	ix := &idl.Instruction{
		Name: "link",
		Args: []idl.Arg{{Name: "owner", Type: []byte(`"pubkey"`)}},
	}
	seeds := []idl.Seed{
		{Kind: idl.SeedKindAccount, Path: "owner"},
		{Kind: idl.SeedKindArg, Path: "owner"},
	}

	params, buffers, err := ResolveSeeds(seeds, ix)
	require.NoError(t, err)

	// Same name from two seeds yields a single parameter but both buffers.
	assert.Equal(t, []string{"owner"}, params)
	assert.Len(t, buffers, 2)
}

func TestResolveSeedsUnknownKind(t *testing.T) {
	_, _, err := ResolveSeeds([]idl.Seed{{Kind: "weird"}}, &idl.Instruction{Name: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidIDL(err))
}

func TestResolveSeedsMissingArgDefaultsToString(t *testing.T) {
	ix := &idl.Instruction{Name: "x"}
	_, buffers, err := ResolveSeeds([]idl.Seed{{Kind: idl.SeedKindArg, Path: "ghost"}}, ix)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buffer.from(ghost)"}, buffers)
}

func TestResolveSeedsNonUTF8ConstHexFallback(t *testing.T) {
	seeds := []idl.Seed{{Kind: idl.SeedKindConst, Value: idl.ByteValue{0xff, 0xfe}}}
	_, buffers, err := ResolveSeeds(seeds, &idl.Instruction{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Buffer.from('0xfffe')"}, buffers)
}

func TestArgBufferTable(t *testing.T) {
	cases := []struct {
		argType string
		want    string
	}{
		{"string", "Buffer.from(id)"},
		{"u8", "Buffer.from([id])"},
		{"u16", "Buffer.from(new Uint16Array([id]))"},
		{"u32", "Buffer.from(new Uint32Array([id]))"},
		{"u64", "Buffer.from(new anchor.BN(id).toArray('le', 8))"},
		{"i64", "Buffer.from(new anchor.BN(id).toArray('le', 8))"},
		{"i8", "Buffer.from([id < 0 ? id + 256 : id])"},
		{"i16", "Buffer.from(new Int16Array([id]))"},
		{"i32", "Buffer.from(new Int32Array([id]))"},
		{"bool", "Buffer.from([id ? 1 : 0])"},
		{"bytes", "Buffer.from(id)"},
		{"Vec<u8>", "Buffer.from(id)"},
		{"publicKey", "id.toBuffer()"},
		{"pubkey", "id.toBuffer()"},
		{"Pubkey", "id.toBuffer()"},
		{"PublicKey", "id.toBuffer()"},
		{"u128", "Buffer.from(new Uint32Array([id]))"},
		{"i128", "Buffer.from(new Uint32Array([id]))"},
		{"f64", "Buffer.from(id) // TODO: Verify type handling for 'f64'"},
	}

	for _, tc := range cases {
		t.Run(tc.argType, func(t *testing.T) {
			assert.Equal(t, tc.want, argBuffer("id", tc.argType))
		})
	}
}
