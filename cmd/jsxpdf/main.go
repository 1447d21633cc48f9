package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/k-yle/jsx-pdf/pkg/lib"
)

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(viewCmd)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		lib.Exit(errorFamily(err), err)
	}
}
