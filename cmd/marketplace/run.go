package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// application is the part of *fx.App that run drives.
type application interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
	StartTimeout() time.Duration
	StopTimeout() time.Duration
}

// run starts app, blocks until ctx is cancelled or app asks to shut down,
// then stops it. It returns the process exit code.
func run(ctx context.Context, app application, stderr io.Writer) int {
	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(stderr, "failed to start marketplace: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case sig := <-app.Done():
		fmt.Fprintf(stderr, "shutdown requested: %v\n", sig)
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "failed to stop marketplace: %v\n", err)
		return 1
	}
	return 0
}
