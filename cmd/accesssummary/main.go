package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := newCommandRouter(os.Stdout, os.Stderr, os.Getenv)
	if err := router.Route(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "accesssummary: %v\n", err)
		stop()
		os.Exit(1)
	}
}
