package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals defines the default signals to catch in order to do a
// proper shutdown.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// InterruptListener returns a channel that gets closed when an interrupt
// signal arrives. A second signal while shutdown is in progress is logged
// and otherwise ignored.
func InterruptListener() <-chan struct{} {
	interrupted := make(chan struct{})

	spawn("InterruptListener", func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)

		sig := <-interruptChannel
		log.Infof("Received signal (%s). Shutting down...", sig)
		close(interrupted)

		for sig := range interruptChannel {
			log.Infof("Received signal (%s). Already shutting down...", sig)
		}
	})

	return interrupted
}
