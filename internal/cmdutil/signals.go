package cmdutil

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownSignals stop the gateway.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// CatchCtrlC cancels the context on the first SIGINT or SIGTERM so the
// server can drain and the store can be closed. A second signal exits the
// process immediately with status 1.
func CatchCtrlC(cancel context.CancelFunc) {
	received := make(chan os.Signal, 2)
	signal.Notify(received, shutdownSignals...)

	go func() {
		<-received
		cancel()

		<-received
		os.Exit(1)
	}()
}
