package main

import (
	"context"
	"flag"
	"os"

	ledgermigratecmd "github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/cmd/ledgermigrate"
	"github.com/RobinsonDionte40hz/world-history-sim-engine-sub004/internal/platform/config"
)

func main() {
	cfg, err := ledgermigratecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := ledgermigratecmd.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
