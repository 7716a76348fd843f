package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tminus/internal/dateinput"
)

const targetLayout = "Mon Jan 2 2006 15:04:05"

func addSet(topLevel *cobra.Command, opts *globalOptions, e env) {
	cmd := &cobra.Command{
		Use:   "set DATE",
		Short: "Persist a new target date.",
		Long: "Persist a new target date. Accepts absolute dates such as 2025-12-31 23:59,\n" +
			"month/day shorthand (12/31), relative windows (+2d4h, in 90m) and epoch milliseconds.",
		Example: `
tminus set 2025-12-31 23:59
tminus set 12/31
tminus set +1w2d
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			t, err := dateinput.ParseTime(raw, e.clock.Now().In(e.location))
			if err != nil {
				return fmt.Errorf("set: %w", err)
			}

			store, done, err := openStore(cmd, opts, e)
			if err != nil {
				return err
			}
			defer done()

			if err := store.Set(commandContext(cmd), float64(t.UnixMilli())); err != nil {
				return fmt.Errorf("set: %w", err)
			}
			_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "target set: %s\n", t.In(e.location).Format(targetLayout))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
