package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nuchoate/league-archive/internal/app"
	"github.com/nuchoate/league-archive/internal/interfaces/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := cli.NewRootCommand(application).ExecuteContext(ctx); err != nil {
		application.Logger.Error("command failed", "error", err)
		application.Close()
		os.Exit(1)
	}
}
