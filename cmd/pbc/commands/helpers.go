package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fromhorizons/pocketbase-go/internal/constants"
	"github.com/fromhorizons/pocketbase-go/pkg/pocketbase"
)

// Common static errors used throughout the commands package.
var (
	ErrURLRequired        = errors.New("server URL is required (use --url or run 'pbc login')")
	ErrDataRequired       = errors.New("record data is required (use --data or --field)")
	ErrInvalidFieldFormat = errors.New("invalid field format, expected name=value")
	ErrInvalidFileFormat  = errors.New("invalid file format, expected field=path")
)

// record is the dynamic record shape used by the CLI; typed decoding is for
// library consumers.
type record = map[string]interface{}

// newClient builds a client from the resolved configuration.
func newClient() (*pocketbase.Client, error) {
	serverURL := viper.GetString("url")
	if serverURL == "" {
		return nil, ErrURLRequired
	}

	config := &pocketbase.Config{
		BaseURL: serverURL,
		Token:   sessionToken(),
		Debug:   viper.GetBool("verbose"),
	}

	if config.Debug {
		config.Logger = newZerologAdapter()
	}

	client, err := pocketbase.NewWithConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// zerologAdapter bridges zerolog to the client's logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newZerologAdapter() *zerologAdapter {
	return &zerologAdapter{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
}

func (a *zerologAdapter) emit(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for key, value := range fields {
		event = event.Interface(key, value)
	}

	event.Msg(msg)
}

func (a *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	a.emit(a.logger.Debug(), msg, fields)
}

func (a *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	a.emit(a.logger.Info(), msg, fields)
}

func (a *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	a.emit(a.logger.Warn(), msg, fields)
}

func (a *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	a.emit(a.logger.Error(), msg, fields)
}

// sessionToken resolves the token to use: the --token flag wins, then the
// saved login.
func sessionToken() string {
	return viper.GetString("token")
}

// renderOutput prints value as json, yaml or a key/value table depending on
// the --output flag.
func renderOutput(value interface{}) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(value)
	case constants.FormatYAML:
		return yaml.NewEncoder(os.Stdout).Encode(value)
	default:
		return renderTable(value)
	}
}

// renderTable prints one record as a field/value table, or a record list as a
// row-per-record table.
func renderTable(value interface{}) error {
	table := tablewriter.NewWriter(os.Stdout)

	switch typed := value.(type) {
	case record:
		table.Header("Field", "Value")

		for _, name := range sortedKeys(typed) {
			_ = table.Append(name, formatValue(typed[name]))
		}
	case []record:
		columns := listColumns(typed)
		header := make([]interface{}, 0, len(columns))

		for _, column := range columns {
			header = append(header, column)
		}

		table.Header(header...)

		for _, row := range typed {
			cells := make([]interface{}, 0, len(columns))
			for _, column := range columns {
				cells = append(cells, formatValue(row[column]))
			}

			_ = table.Append(cells...)
		}
	default:
		// Fall back to JSON for shapes without a table rendering.
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// listColumns derives stable columns for a list table: id first, then the
// remaining fields alphabetically.
func listColumns(records []record) []string {
	seen := map[string]bool{}

	for _, row := range records {
		for name := range row {
			seen[name] = true
		}
	}

	columns := []string{}

	for name := range seen {
		if name != "id" {
			columns = append(columns, name)
		}
	}

	sort.Strings(columns)

	if seen["id"] {
		columns = append([]string{"id"}, columns...)
	}

	return columns
}

func sortedKeys(row record) []string {
	keys := make([]string, 0, len(row))
	for name := range row {
		keys = append(keys, name)
	}

	sort.Strings(keys)

	return keys
}

func formatValue(value interface{}) string {
	if value == nil {
		return constants.NotAvailable
	}

	switch typed := value.(type) {
	case string:
		return typed
	case map[string]interface{}, []interface{}:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return constants.NotAvailable
		}

		return string(encoded)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// saveSession persists the server URL and token to the config file.
func saveSession(serverURL, token string) error {
	viper.Set("url", serverURL)
	viper.Set("token", token)

	return saveConfig()
}

// clearSession removes the saved token.
func clearSession() error {
	viper.Set("token", "")

	return saveConfig()
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}

		configDir := filepath.Join(home, ".pbc")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return os.Chmod(configFile, constants.ConfigFilePerm)
}
