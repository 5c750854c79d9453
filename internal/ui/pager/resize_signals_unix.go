//go:build !windows && !plan9 && !js && !wasip1

package pager

import (
	"os"
	"os/signal"
	"syscall"
)

func notifyResize() chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	return ch
}

func stopResize(ch chan os.Signal) {
	signal.Stop(ch)
}
