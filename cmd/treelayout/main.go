// Command treelayout computes, renders and serves tidy tree layouts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/treelayout/internal/cli"
	tlerrors "github.com/matzehuels/treelayout/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	// Input errors exit with 2.
	if tlerrors.GetCode(err).IsInvalid() {
		return 2
	}
	return 1
}
