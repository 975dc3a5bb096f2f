package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haguru/blogd/config"
	"github.com/haguru/blogd/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// create and initialize the app
	blog, err := app.NewApp(ctx, config.CONFIG_PATH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	// serve until interrupted
	runErr := blog.Run(ctx)
	if err := blog.Close(context.Background()); err != nil {
		blog.Logger.Error("Failed to close store", "error", err)
	}
	if runErr != nil {
		blog.Logger.Error("Server stopped", "error", runErr)
		os.Exit(1)
	}
}
