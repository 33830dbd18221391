package launcher

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jeanhaley32/claude-container/internal/terminal"
)

// CleanupRegistry collects the cleanup obligations a run accumulates:
// staged credential release, worktree removal. Functions run once, in
// reverse registration order, on every exit path including signals.
type CleanupRegistry struct {
	mu    sync.Mutex
	funcs []func()
	done  bool
}

// Register adds fn to the registry.
func (r *CleanupRegistry) Register(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs = append(r.funcs, fn)
}

// Run executes the registered functions once. Later calls are no-ops,
// so the signal path and the deferred normal path can both invoke it.
func (r *CleanupRegistry) Run() {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	r.done = true
	funcs := r.funcs
	r.mu.Unlock()

	for i := len(funcs) - 1; i >= 0; i-- {
		funcs[i]()
	}
}

// NotifySignals funnels SIGINT, SIGTERM, and SIGHUP into the registry
// before exiting. The returned stop function uninstalls the handler;
// defer it so a normal exit leaves the registry to the caller.
func (r *CleanupRegistry) NotifySignals(printer *terminal.Printer) func() {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		select {
		case sig := <-sigChan:
			printer.Warnf("Received signal: %v, cleaning up...", sig)
			r.Run()
			os.Exit(1)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
