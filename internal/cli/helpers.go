package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/cadence/internal/logging"
)

// Interrupt is a context cancelled by the first watched signal. It keeps the
// signal so the command can say why the run stopped.
type Interrupt struct {
	context.Context

	cancel context.CancelFunc
	ch     chan os.Signal
	mu     sync.Mutex
	sig    os.Signal
}

// WatchInterrupts returns a context cancelled on SIGINT or SIGTERM, or on the
// given signals when any are passed. Call Stop to release the watcher.
func WatchInterrupts(parent context.Context, signals ...os.Signal) *Interrupt {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancel(parent)
	in := &Interrupt{Context: ctx, cancel: cancel, ch: make(chan os.Signal, 1)}

	signal.Notify(in.ch, signals...)
	go func() {
		defer signal.Stop(in.ch)
		select {
		case sig := <-in.ch:
			in.mu.Lock()
			in.sig = sig
			in.mu.Unlock()
			in.cancel()
		case <-ctx.Done():
		}
	}()
	return in
}

// Signal returns the signal that cancelled the context, or nil.
func (in *Interrupt) Signal() os.Signal {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.sig
}

// Stop cancels the context and stops watching.
func (in *Interrupt) Stop() { in.cancel() }

// createLogger configures the application logger. Logs go to stderr so
// stdout stays free for the console and report observers.
func createLogger(level string, json bool) *slog.Logger {
	if level == "off" {
		return logging.NewNop()
	}
	return logging.New(logging.ParseLevel(level), json)
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// HandleExecutionError turns interruptions into a clean exit. When sig is
// known the interruption is reported on w.
func HandleExecutionError(w io.Writer, err error, sig os.Signal) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		if sig != nil {
			printSystemMessage(w, "Run interrupted by %s.", sig)
		}
		return nil
	}
	return err
}
