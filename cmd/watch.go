package cmd

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nssalian/litedoc-go/litedoc"
)

// NewWatchCmd creates the watch subcommand: parses the file once, then
// re-parses on every write, printing the current diagnostic set each
// time. Runs until the command's context is canceled.
func NewWatchCmd(reader SourceReader) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "watch <file>",
		Short:        "Re-parse a LiteDoc file on every change and report diagnostics",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx := cmd.Context()
			logger := newLogger(cmd.ErrOrStderr(), false)

			cfg, err := loadConfigForCmd(cmd)
			if err != nil {
				logger.Error("config load failed", "error", err)
				return err
			}
			reqID, err := resolveRequestID(cmd)
			if err != nil {
				return fmt.Errorf("generating request id: %w", err)
			}

			reportParse(cmd, reader, path, cfg, reqID)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
						reportParse(cmd, reader, path, cfg, reqID)
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Error("watch error", "path", path, "error", err)
				}
			}
		},
	}
	return cmd
}

// reportParse runs one recovery-mode parse of path and prints the
// resulting diagnostics, or a clean confirmation line when there are
// none. Read failures are reported and skipped so a mid-save truncation
// doesn't kill the watch loop.
func reportParse(cmd *cobra.Command, reader SourceReader, path string, cfg *ldocConfig, reqID string) {
	source, err := reader.ReadSource(cmd.Context(), path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: reading %s: %v [request-id %s]\n", path, err, reqID)
		return
	}
	result := litedoc.ParseWithRecovery(source, parseOptionsFor(path, cfg)...)
	if result.OK {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		return
	}
	printDiagnostics(cmd, source, reqID, result.Diagnostics)
}
