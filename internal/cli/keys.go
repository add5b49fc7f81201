package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newKeysCommand creates the "keys" subcommand that lists the active key bindings.
func newKeysCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List key aliases and the keys they press",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfigFromOpts(opts)
			if err != nil {
				return err
			}
			km, err := buildKeymap(cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "KEY\tALIAS")
			for _, b := range km.Bindings() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", b.Key.Name(), b.Alias)
			}
			return tw.Flush()
		},
	}
	return cmd
}
