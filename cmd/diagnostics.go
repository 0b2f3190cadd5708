package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nssalian/litedoc-go/litedoc"
)

// NewDiagnosticsCmd creates the diagnostics subcommand: always runs in
// recovery mode and reports every diagnostic found, regardless of
// --strict (which the parse subcommand honors instead).
func NewDiagnosticsCmd(reader SourceReader) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "diagnostics <file>",
		Short:        "Report every diagnostic in a LiteDoc file without aborting",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx := cmd.Context()

			cfg, err := loadConfigForCmd(cmd)
			if err != nil {
				return err
			}
			reqID, err := resolveRequestID(cmd)
			if err != nil {
				return fmt.Errorf("generating request id: %w", err)
			}

			source, err := reader.ReadSource(ctx, path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			result := litedoc.ParseWithRecovery(source, parseOptionsFor(path, cfg)...)
			printDiagnostics(cmd, source, reqID, result.Diagnostics)
			if !result.OK {
				return fmt.Errorf("%s has %d diagnostic(s)", path, len(result.Diagnostics))
			}
			return nil
		},
	}
	return cmd
}
