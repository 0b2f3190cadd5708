// Package cmd implements the ldoc CLI commands.
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// requestIDGenerator mints a correlation id for a CLI invocation's
// diagnostic output. Override in tests to inject a specific value or
// simulate an entropy-source error.
var requestIDGenerator = requestIDv7Impl

// requestIDv7Impl calls uuid.NewV7 to produce a time-ordered correlation
// id. Excluded from coverage because it wraps an external entropy source.
func requestIDv7Impl() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewRootCmd creates the root ldoc command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ldoc",
		Short:         "ldoc - LiteDoc parser CLI",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.PersistentFlags().String("request-id", "", "Correlation id stamped on diagnostic output (default: a generated UUIDv7)")
	root.PersistentFlags().String("config", configFileName, "Path to the .ldoc.yml config file")
	root.AddCommand(NewParseCmd(fileSourceReader{}))
	root.AddCommand(NewDiagnosticsCmd(fileSourceReader{}))
	root.AddCommand(NewWatchCmd(fileSourceReader{}))
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// resolveRequestID returns the --request-id flag's value, generating a
// fresh UUIDv7 when it was left unset. The flag lives on the root
// command's persistent set; before cobra has merged inherited flags into
// cmd's own set (it does so while executing), the lookup falls back to
// the root set directly.
func resolveRequestID(cmd *cobra.Command) (string, error) {
	id, err := cmd.Flags().GetString("request-id")
	if err != nil {
		id, _ = cmd.Root().PersistentFlags().GetString("request-id")
	}
	if id != "" {
		return id, nil
	}
	return requestIDGenerator()
}

// loadConfigForCmd loads the --config file for cmd, tolerating its
// absence.
func loadConfigForCmd(cmd *cobra.Command) (*ldocConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}
