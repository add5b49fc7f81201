package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// newEvalCommand creates the "eval" subcommand that applies keys given as arguments.
func newEvalCommand(opts *Options) *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "eval [keys...]",
		Short: "Press keys given as arguments and print the display",
		Long: "Press keys given as arguments and print the display.\n" +
			"Use -- before keys that look like flags, e.g. calcctl eval -- 9 - 4 =",
		Example: "  calcctl eval 3 + 4 x 2 =\n  calcctl eval --steps 12.5+3=",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			sess, err := newSessionFromCmd(cmd, opts, &flags, false)
			if err != nil {
				return err
			}

			line := strings.Join(args, " ")
			if err := sess.Feed(line); err != nil {
				return err
			}
			logger.Debug("evaluated", "keys", line, "display", sess.Engine().Display())
			return nil
		},
	}

	addSessionFlags(cmd, &flags)
	return cmd
}
