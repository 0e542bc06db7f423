package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	worldsimcmd "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/cmd/worldsim"
)

func main() {
	cfg, err := worldsimcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[WORLDSIM] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := worldsimcmd.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("failed to run: %v", err)
	}
}
