package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tminus/internal/countdown"
	"github.com/sandeepkv93/tminus/internal/logging"
	"github.com/sandeepkv93/tminus/internal/projection"
	"github.com/sandeepkv93/tminus/internal/target"
	"github.com/sandeepkv93/tminus/internal/views"
)

func addWatch(topLevel *cobra.Command, opts *globalOptions, e env) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the countdown line by line until the target arrives.",
		Example: `
tminus watch
tminus watch --store memory
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			kv, err := e.openKV(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = kv.Close() }()

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := newLineWatcher(cmd.OutOrStdout())
			ctrl, err := countdown.NewController(countdown.Deps{
				Store:     target.New(kv, e.clock),
				Scheduler: e.scheduler(),
				Effect:    w,
				View:      w,
				Clock:     e.clock,
				Interval:  cfg.TickInterval(),
			})
			if err != nil {
				return err
			}
			defer ctrl.Close()
			return w.wait(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}

// lineWatcher is both the view and the completion effect for line mode.
// The command finishes after the completed frame has been printed.
type lineWatcher struct {
	mu     sync.Mutex
	out    io.Writer
	played bool
	done   chan struct{}
	once   sync.Once
}

func newLineWatcher(out io.Writer) *lineWatcher {
	return &lineWatcher{out: out, done: make(chan struct{})}
}

func (l *lineWatcher) Render(parts countdown.Parts, completed bool) {
	instr := projection.Project(parts, completed)
	l.mu.Lock()
	defer l.mu.Unlock()
	if instr.ShowTime {
		_, _ = fmt.Fprintf(l.out, "%sd %sh %sm %ss\n", instr.Days, instr.Hours, instr.Minutes, instr.Seconds)
	}
	if instr.ShowEventMessage {
		_, _ = color.New(color.FgYellow, color.Bold).Fprintln(l.out, views.EventMessage)
		if l.played {
			l.once.Do(func() { close(l.done) })
		}
	}
}

func (l *lineWatcher) Play() {
	l.mu.Lock()
	l.played = true
	l.mu.Unlock()
}

func (l *lineWatcher) Clear() {}

func (l *lineWatcher) wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		logging.Debug("watch interrupted")
		return nil
	}
}
