package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tminus/internal/views"
)

func addDebug(topLevel *cobra.Command, opts *globalOptions, e env) {
	pretty := false
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Dump the raw persisted target slot.",
		Example: `
tminus debug
tminus debug --pretty
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, done, err := openStore(cmd, opts, e)
			if err != nil {
				return err
			}
			defer done()

			info := store.Debug(commandContext(cmd), e.location)
			if pretty {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), views.RenderDebugPanel(info.String()))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render through the markdown renderer used by the TUI overlay.")
	topLevel.AddCommand(cmd)
}
