package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/tminus/internal/countdown"
	"github.com/sandeepkv93/tminus/internal/logging"
	"github.com/sandeepkv93/tminus/internal/target"
)

// report is the machine-readable view of the current countdown.
type report struct {
	Target   string          `json:"target" yaml:"target"`
	TargetMs int64           `json:"targetMs" yaml:"targetMs"`
	Stored   bool            `json:"stored" yaml:"stored"`
	Now      string          `json:"now" yaml:"now"`
	State    countdown.State `json:"state" yaml:"state"`
	Parts    countdown.Parts `json:"remaining" yaml:"remaining"`
}

func addShow(topLevel *cobra.Command, opts *globalOptions, e env) {
	output := "table"
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the target date and the time left.",
		Example: `
tminus show
tminus show -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, done, err := openStore(cmd, opts, e)
			if err != nil {
				return err
			}
			defer done()

			ctx := commandContext(cmd)
			stored, err := store.Stored(ctx)
			if err != nil {
				logging.Warnf("read stored target: %v", err)
			}
			r := buildReport(store.Get(ctx), stored, e.clock.Now(), e.location)
			return writeReport(cmd.OutOrStdout(), r, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format. One of 'table', 'json' or 'yaml'.")
	topLevel.AddCommand(cmd)
}

func buildReport(tgt target.Timestamp, stored bool, now time.Time, loc *time.Location) report {
	parts := countdown.ComputeParts(tgt, target.FromTime(now))
	state := countdown.StateRunning
	if parts.Passed() {
		state = countdown.StateCompleted
	}
	return report{
		Target:   tgt.Time().In(loc).Format(time.RFC3339Nano),
		TargetMs: int64(tgt),
		Stored:   stored,
		Now:      now.In(loc).Format(time.RFC3339Nano),
		State:    state,
		Parts:    parts,
	}
}

func writeReport(w io.Writer, r report, output string) error {
	switch output {
	case "json":
		body, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(body))
		return err
	case "yaml":
		body, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(body)
		return err
	case "table", "":
		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("TARGET"), r.Target)
		if !r.Stored {
			tbl.AddRow("", color.New(color.Faint).Sprint("(default, not stored)"))
		}
		tbl.AddRow(bold.Sprint("STATE"), r.State.String())
		tbl.AddRow(bold.Sprint("DAYS"), r.Parts.Days)
		tbl.AddRow(bold.Sprint("HOURS"), r.Parts.Hours)
		tbl.AddRow(bold.Sprint("MINUTES"), r.Parts.Minutes)
		tbl.AddRow(bold.Sprint("SECONDS"), r.Parts.Seconds)
		tbl.RightAlign(0)
		_, err := fmt.Fprintln(w, tbl)
		return err
	default:
		return fmt.Errorf("show: unknown output format %q", output)
	}
}
