// Package logging provides colored, leveled log output for tminus.
//
// Every function writes one prefixed, color-coded line. Debug output is
// suppressed unless verbose mode is enabled via SetVerbose(true). The TUI
// redirects both streams with SetOutput so log lines never land on the
// alternate screen.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	verbose bool
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
)

var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	debugPrefix   = color.New(color.FgMagenta).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// SetOutput redirects informational and error output. Nil restores the
// process streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout, stderr = out, errOut
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
}

func Info(msg string) {
	write(false, infoPrefix("[INFO]")+" "+msg)
}

func Success(msg string) {
	write(false, successPrefix("[SUCCESS]")+" "+msg)
}

func Warn(msg string) {
	write(false, warnPrefix("[WARN]")+" "+msg)
}

// Error prints to the error stream in red.
func Error(msg string) {
	write(true, errorPrefix("[ERROR]")+" "+msg)
}

// Debug prints only when verbose mode is enabled.
func Debug(msg string) {
	mu.Lock()
	on := verbose
	mu.Unlock()
	if !on {
		return
	}
	write(false, debugPrefix("[DEBUG]")+" "+msg)
}

func Infof(format string, args ...any)  { Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Warn(fmt.Sprintf(format, args...)) }
func Debugf(format string, args ...any) { Debug(fmt.Sprintf(format, args...)) }

func write(toErr bool, line string) {
	mu.Lock()
	defer mu.Unlock()
	w := stdout
	if toErr {
		w = stderr
	}
	_, _ = fmt.Fprintln(w, line)
}

// FormatDuration converts a duration in seconds to a human-readable string.
//
// Examples:
//
//	FormatDuration(45)     => "45s"
//	FormatDuration(90)     => "1m 30s"
//	FormatDuration(3661)   => "1h 1m 1s"
//	FormatDuration(90061)  => "1d 1h 1m 1s"
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case d > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", d, h, m, s)
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
