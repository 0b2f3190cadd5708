package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
	"github.com/nssalian/litedoc-go/litedoc"
	"github.com/nssalian/litedoc-go/serialize"
)

// NewParseCmd creates the parse subcommand.
func NewParseCmd(reader SourceReader) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "parse <file>",
		Short:        "Parse a LiteDoc file and report diagnostics",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx := cmd.Context()

			jsonMode, _ := cmd.Flags().GetBool("json")
			logger := newLogger(cmd.ErrOrStderr(), jsonMode)

			cfg, err := loadConfigForCmd(cmd)
			if err != nil {
				logger.Error("config load failed", "error", err)
				return err
			}

			reqID, err := resolveRequestID(cmd)
			if err != nil {
				return fmt.Errorf("generating request id: %w", err)
			}

			source, err := reader.ReadSource(ctx, path)
			if err != nil {
				logger.Error("reading source failed", "path", path, "error", err)
				return fmt.Errorf("reading %s: %w", path, err)
			}

			opts := parseOptionsFor(path, cfg)

			strict, _ := cmd.Flags().GetBool("strict")
			if !cmd.Flags().Changed("strict") {
				strict = cfg.Strict
			}

			if strict {
				doc, err := litedoc.Parse(source, opts...)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v (request-id %s)\n", err, reqID)
					return fmt.Errorf("parse failed: %w", err)
				}
				if jsonMode {
					return writeDocumentJSON(cmd, doc)
				}
				return nil
			}

			result := litedoc.ParseWithRecovery(source, opts...)
			printDiagnostics(cmd, source, reqID, result.Diagnostics)
			if jsonMode {
				if err := writeDocumentJSON(cmd, result.Document); err != nil {
					return err
				}
			}
			if !result.OK {
				return fmt.Errorf("%s has %d diagnostic(s)", path, len(result.Diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the canonical JSON tree to stdout")
	cmd.Flags().Bool("strict", false, "Abort parsing at the first diagnostic")
	return cmd
}

// parseOptionsFor builds the litedoc.Option slice for path, layering a
// filename hint under any profile/module defaults loaded from cfg.
func parseOptionsFor(path string, cfg *ldocConfig) []litedoc.Option {
	opts := []litedoc.Option{litedoc.WithFilenameHint(path)}
	if p, ok := cfg.profile(); ok {
		opts = append(opts, litedoc.WithProfile(p))
	}
	if m, ok := cfg.moduleSet(); ok {
		opts = append(opts, litedoc.WithModules(m))
	}
	return opts
}

func writeDocumentJSON(cmd *cobra.Command, doc *ast.Document) error {
	data, err := serialize.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// printDiagnostics writes each diagnostic to stderr, one line per
// diagnostic, as "severity: message (CODE) at line:col", re-locating the
// span's start offset against source.
func printDiagnostics(cmd *cobra.Command, source []byte, reqID string, diags []ast.Diagnostic) {
	for _, d := range diags {
		line, col := cursor.LineCol(source, d.Span.Start)
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s (%s) at %d:%d [request-id %s]\n", d.Message, d.Kind, line, col, reqID)
	}
}
