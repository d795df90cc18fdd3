package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"

	"github.com/pthm/docgrade/internal/cmd"
	"github.com/pthm/docgrade/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := fang.Execute(ctx, cmd.RootCmd,
		fang.WithVersion(version.Current().Version),
		fang.WithCommit(version.Commit),
	)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
