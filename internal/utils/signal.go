package utils

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// SetupSignalHandling flags a shutdown on SIGINT/SIGTERM and calls
// onShutdown once. A second signal exits immediately. The returned
// function stops listening.
func SetupSignalHandling(shutdownRequested *int32, onShutdown func()) (stop func()) {
	sigCh := make(chan os.Signal, 2)
	done := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			fmt.Printf("\n⚠️ Received signal %v, finishing current profile and shutting down...\n", sig)
			atomic.StoreInt32(shutdownRequested, 1)
			if onShutdown != nil {
				onShutdown()
			}
		case <-done:
			return
		}

		select {
		case <-sigCh:
			fmt.Println("⛔ Second signal, exiting now")
			os.Exit(130)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
