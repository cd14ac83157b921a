package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardnew/doji/cli"
	"github.com/ardnew/doji/cli/cmd"
	"github.com/ardnew/doji/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	switch {
	case err == nil:
	case errors.Is(err, cmd.ErrReported):
		// Diagnostics were already written.
		os.Exit(1)
	default:
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
