// Package commands implements the dh CLI subcommands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
	"github.com/datahawk-io/datahawk-go/pkg/dhclient"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	jsonIndent = "  "
)

// Common static errors used throughout the commands package.
var (
	ErrEndpointRequired   = errors.New("API endpoint is required (use --origin or --domain, or run 'dh login')")
	ErrDatasetUUIDNeeded  = errors.New("dataset UUID is required")
	ErrExportIDNeeded     = errors.New("export ID is required")
	ErrJobIDNeeded        = errors.New("job ID is required")
	ErrTicketIDNeeded     = errors.New("ticket ID is required")
	ErrSubjectRequired    = errors.New("ticket subject is required")
	ErrFormatRequired     = errors.New("export format is required (--format)")
	ErrNameRequired       = errors.New("dataset name is required")
	ErrCredentialsMissing = errors.New("client key and secret are required")
)

// CLIConfig is the persisted ~/.dh/config.yml shape.
type CLIConfig struct {
	Origin     string `json:"origin,omitempty"      yaml:"origin,omitempty"`
	Domain     string `json:"domain,omitempty"      yaml:"domain,omitempty"`
	AuthOrigin string `json:"auth_origin,omitempty" yaml:"auth_origin,omitempty"`
	Tenant     string `json:"tenant,omitempty"      yaml:"tenant,omitempty"`
	Key        string `json:"key,omitempty"         yaml:"key,omitempty"`
	Secret     string `json:"secret,omitempty"      yaml:"secret,omitempty"`
	Audience   string `json:"audience,omitempty"    yaml:"audience,omitempty"`
	Token      string `json:"token,omitempty"       yaml:"token,omitempty"`
	Env        string `json:"env,omitempty"         yaml:"env,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// CreateClient builds an API client from the effective viper configuration
// (flags, environment, config file).
func CreateClient() (datahawk.Client, error) {
	config := &datahawk.Config{
		Env:        viper.GetString("env"),
		Origin:     viper.GetString("origin"),
		Domain:     viper.GetString("domain"),
		AuthOrigin: viper.GetString("auth_origin"),
		Tenant:     viper.GetString("tenant"),
		Key:        viper.GetString("key"),
		Secret:     viper.GetString("secret"),
		Audience:   viper.GetString("audience"),
		Token:      viper.GetString("token"),
		Debug:      viper.GetBool("debug"),
	}

	if config.Origin == "" && config.Domain == "" {
		return nil, ErrEndpointRequired
	}

	if config.Debug {
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		config.Logger = datahawk.NewZerologLogger(zl)
	}

	client, err := dhclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// configFilePath returns the path of the persisted CLI config file, honoring
// the --config flag.
func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".dh", "config.yml"), nil
}

// loadCLIConfig reads the persisted config, returning an empty config when
// the file does not exist yet.
func loadCLIConfig() (*CLIConfig, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CLIConfig{}, nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config CLIConfig

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &config, nil
}

// saveCLIConfig writes the config back to disk with restrictive permissions,
// since it can hold a client secret.
func saveCLIConfig(config *CLIConfig) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", jsonIndent)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// outputYAML writes v to stdout as YAML.
func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return encoder.Close()
}

// stringOrNA substitutes a placeholder for empty table cells.
func stringOrNA(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}
