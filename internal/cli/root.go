// Package cli wires the tminus cobra commands: the interactive countdown and
// the line-mode helpers around the persisted target date.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tminus/internal/config"
	"github.com/sandeepkv93/tminus/internal/logging"
	"github.com/sandeepkv93/tminus/internal/scheduler"
	"github.com/sandeepkv93/tminus/internal/storage"
	"github.com/sandeepkv93/tminus/internal/target"
	"github.com/sandeepkv93/tminus/internal/timeutil"
	"github.com/sandeepkv93/tminus/internal/update"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type globalOptions struct {
	ConfigPath string
	Store      string
	DBPath     string
	Verbose    bool
}

// env carries the collaborators commands share. Tests swap in fakes.
type env struct {
	clock     timeutil.Clock
	location  *time.Location
	openKV    func(config.Config) (storage.KV, error)
	scheduler func() scheduler.Scheduler
	runTUI    func(*update.Runtime) error
}

func defaultEnv() env {
	return env{
		clock:     timeutil.RealClock{},
		location:  time.Local,
		openKV:    storage.Open,
		scheduler: func() scheduler.Scheduler { return scheduler.NewEngine() },
		runTUI:    runProgram,
	}
}

func New() *cobra.Command {
	return newRoot(defaultEnv())
}

func newRoot(e env) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "tminus",
		Short: "Count down to a date in your terminal.",
		Long: "tminus shows the days, hours, minutes and seconds left until a target date\n" +
			"and celebrates when it arrives. The target is remembered between runs.",
		Example: `
tminus
tminus set 2025-12-31 23:59
tminus show -o json
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			restore, err := redirectLogs(cfg)
			if err != nil {
				return err
			}
			defer restore()

			kv, err := e.openKV(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			rt, err := update.NewRuntime(update.RuntimeDeps{
				KV:        kv,
				Clock:     e.clock,
				Scheduler: e.scheduler(),
				Config:    update.RuntimeConfigFrom(cfg),
				Location:  e.location,
			})
			if err != nil {
				return err
			}
			defer rt.Close()
			return e.runTUI(rt)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to the TOML config file (default $TMINUS_CONFIG or the user config dir).")
	flags.StringVar(&opts.Store, "store", "", "Storage backend: sqlite, diskv or memory.")
	flags.StringVar(&opts.DBPath, "db", "", "SQLite database path.")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging.")

	addSet(cmd, opts, e)
	addShow(cmd, opts, e)
	addWatch(cmd, opts, e)
	addDebug(cmd, opts, e)
	addConfig(cmd, opts)
	addVersion(cmd)
	return cmd
}

// loadConfig applies defaults < file < TMINUS_* env < explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.ResolvePath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg = config.FromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store = opts.Store
	}
	if flags.Changed("db") {
		cfg.DBPath = opts.DBPath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logging.SetVerbose(cfg.Verbose)
	logging.Debugf("config loaded from %s (store=%s)", path, cfg.Store)
	return cfg, nil
}

// redirectLogs keeps log lines off the alternate screen.
func redirectLogs(cfg config.Config) (func(), error) {
	if cfg.LogFile == "" {
		logging.SetOutput(io.Discard, io.Discard)
		return func() { logging.SetOutput(nil, nil) }, nil
	}
	path, err := homedir.Expand(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("expand log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logging.SetOutput(f, f)
	return func() {
		logging.SetOutput(nil, nil)
		_ = f.Close()
	}, nil
}

func runProgram(rt *update.Runtime) error {
	program := tea.NewProgram(update.NewModel(rt), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tminus failed: %w", err)
	}
	return nil
}

func openStore(cmd *cobra.Command, opts *globalOptions, e env) (*target.Store, func(), error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	kv, err := e.openKV(cfg)
	if err != nil {
		return nil, nil, err
	}
	return target.New(kv, e.clock), func() { _ = kv.Close() }, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
