package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qcdash/qc-dashboard/services/qcctl/internal/cli"
	"github.com/qcdash/qc-dashboard/services/qcctl/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
