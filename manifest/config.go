package manifest

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/0xsouravm/solpm/errors"
)

// ProjectConfig is the SolanaPrograms.toml document: the manifest of
// the project's own program, used by publish.
type ProjectConfig struct {
	Program ProgramConfig `toml:"program" mapstructure:"program"`
}

// ProgramConfig describes the program this project deploys.
type ProgramConfig struct {
	Name             string `toml:"name" mapstructure:"name"`
	Version          string `toml:"version" mapstructure:"version"`
	ProgramID        string `toml:"program_id" mapstructure:"program_id"`
	Network          string `toml:"network" mapstructure:"network"`
	Description      string `toml:"description" mapstructure:"description"`
	Repository       string `toml:"repository" mapstructure:"repository"`
	AuthorityKeypair string `toml:"authority_keypair" mapstructure:"authority_keypair"`
}

// ConfigExists reports whether SolanaPrograms.toml is present in the
// current directory.
func ConfigExists() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// LoadConfig reads SolanaPrograms.toml from the current directory.
func LoadConfig() (*ProjectConfig, error) {
	return LoadConfigFrom(ConfigFileName)
}

// LoadConfigFrom reads a project config from an explicit path.
func LoadConfigFrom(path string) (*ProjectConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewConfigNotFoundError("%s not found. Run 'solpm init' first.", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var config ProjectConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &config, nil
}

// Save writes the project config as TOML.
func (c *ProjectConfig) Save() error {
	return c.SaveTo(ConfigFileName)
}

// SaveTo writes the project config to an explicit path.
func (c *ProjectConfig) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling project config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Validate checks the fields publish depends on. Optional descriptive
// fields may be empty.
func (c *ProjectConfig) Validate() error {
	if c.Program.Name == "" {
		return errors.New("program name is empty in " + ConfigFileName)
	}
	if c.Program.Version == "" {
		return errors.New("program version is empty in " + ConfigFileName)
	}
	if c.Program.ProgramID == "" {
		return errors.New("program_id is empty in " + ConfigFileName)
	}
	if c.Program.Network == "" {
		return errors.New("network is empty in " + ConfigFileName)
	}
	return nil
}
