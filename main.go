package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/swipetools/gesturectl/cli"
)

func main() {
	// SIGINT/SIGTERM cancel the context; the event loop shuts down cleanly
	// and fire-and-forget actions keep running in their own process groups
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
