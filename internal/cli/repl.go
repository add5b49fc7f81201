package cli

import (
	"github.com/spf13/cobra"
)

// newReplCommand creates the "repl" subcommand that reads key lines from stdin.
func newReplCommand(opts *Options) *cobra.Command {
	var flags sessionFlags
	var showPrompt bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read key lines from stdin and print the display after each line",
		Long: "Read key lines from stdin and print the display after each line.\n" +
			"The calculator keeps its state between lines. Type quit or exit to stop.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			sess, err := newSessionFromCmd(cmd, opts, &flags, showPrompt)
			if err != nil {
				return err
			}

			logger.Debug("session started")
			if err := sess.Run(cmd.Context(), cmd.InOrStdin()); err != nil {
				return err
			}
			logger.Debug("session finished", "display", sess.Engine().Display())
			return nil
		},
	}

	addSessionFlags(cmd, &flags)
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Write the configured prompt before each line")

	return cmd
}
