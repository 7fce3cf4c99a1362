package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyDatabasePath        = "database.path"
	KeyImportNotifyWelcome = "import.notify_welcome"
	KeyRefData             = "refdata"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Import   ImportConfig   `mapstructure:"import"`
	RefData  RefDataConfig  `mapstructure:"refdata"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ImportConfig struct {
	NotifyWelcome bool `mapstructure:"notify_welcome"`
}

// RefDataConfig carries the administratively curated reference-entity names
// seeded via `refdata seed`. The import pipeline itself never grows these.
type RefDataConfig struct {
	ChurchCommunities []string `mapstructure:"church_communities"`
	WorshipPlaces     []string `mapstructure:"worship_places"`
	Societies         []string `mapstructure:"societies"`
	SacramentTypes    []string `mapstructure:"sacrament_types"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# sfoacc configuration
database:
  path: "./sfoacc.db"

import:
  notify_welcome: false

refdata:
  church_communities: []
  worship_places: []
  societies: []
  sacrament_types: []
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRefData(cfg.RefData); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, "./sfoacc.db")
	v.SetDefault(KeyImportNotifyWelcome, false)
	v.SetDefault(KeyRefData, map[string]any{})
}

func validateRefData(refData RefDataConfig) error {
	lists := []struct {
		key   string
		names []string
	}{
		{"church_communities", refData.ChurchCommunities},
		{"worship_places", refData.WorshipPlaces},
		{"societies", refData.Societies},
		{"sacrament_types", refData.SacramentTypes},
	}

	for _, list := range lists {
		seen := make(map[string]struct{}, len(list.names))
		for i, name := range list.names {
			cleaned := strings.ToLower(strings.TrimSpace(name))
			if cleaned == "" {
				return fmt.Errorf("validation failed: refdata.%s[%d] is empty", list.key, i)
			}
			if _, exists := seen[cleaned]; exists {
				return fmt.Errorf("validation failed: duplicate refdata.%s entry %q", list.key, name)
			}
			seen[cleaned] = struct{}{}
		}
	}
	return nil
}
