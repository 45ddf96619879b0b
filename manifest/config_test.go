package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsouravm/solpm/errors"
)

func TestProjectConfigRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())

	config := &ProjectConfig{Program: ProgramConfig{
		Name:             "feedana",
		Version:          "0.1.0",
		ProgramID:        "FeEdAnA111",
		Network:          "devnet",
		Description:      "Anonymous feedback boards",
		Repository:       "https://github.com/example/feedana",
		AuthorityKeypair: "~/.config/solana/id.json",
	}}
	require.NoError(t, config.Save())
	assert.True(t, ConfigExists())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Program, loaded.Program)
}

func TestLoadConfigMissing(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, errors.IsConfigNotFound(err))
}

func TestProjectConfigValidate(t *testing.T) {
	valid := ProgramConfig{Name: "x", Version: "1.0.0", ProgramID: "id", Network: "devnet"}

	assert.NoError(t, (&ProjectConfig{Program: valid}).Validate())

	missingName := valid
	missingName.Name = ""
	assert.Error(t, (&ProjectConfig{Program: missingName}).Validate())

	missingID := valid
	missingID.ProgramID = ""
	assert.Error(t, (&ProjectConfig{Program: missingID}).Validate())
}

func TestParsePackageSpec(t *testing.T) {
	spec, err := ParsePackageSpec("feedana")
	require.NoError(t, err)
	assert.Equal(t, PackageSpec{Name: "feedana"}, spec)
	assert.Equal(t, "feedana", spec.String())

	spec, err = ParsePackageSpec("feedana@0.1.0")
	require.NoError(t, err)
	assert.Equal(t, PackageSpec{Name: "feedana", Version: "0.1.0"}, spec)
	assert.Equal(t, "feedana@0.1.0", spec.String())

	_, err = ParsePackageSpec("@0.1.0")
	assert.Error(t, err)

	_, err = ParsePackageSpec("feedana@not-a-version")
	assert.Error(t, err)
}
