package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/app"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/cli"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	build := func(ctx context.Context) (*app.App, error) {
		return app.Build(ctx, config.Load())
	}

	if err := cli.Execute(ctx, build, os.Args[1:], os.Stdout); err != nil {
		stop()
		os.Exit(1)
	}
}
