package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raoulx24/world-archiver/internal/cli"
)

func main() {
	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
