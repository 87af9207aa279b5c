package main

import (
	"context"
	"fmt"
	"os"

	authservice "fleet-ops/internal/auth-service"
	"fleet-ops/internal/config"
	fleetservice "fleet-ops/internal/fleet-service"
	"fleet-ops/internal/mylogger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: app <auth-service|fleet-service>")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	mylog := mylogger.New(cfg.Log.Level, os.Args[1])

	ctx := context.Background()

	switch os.Args[1] {
	case "auth-service":
		err = authservice.Execute(ctx, mylog, cfg)
	case "fleet-service":
		err = fleetservice.Execute(ctx, mylog, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown service: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		mylog.Error("service exited with error", err)
		os.Exit(1)
	}
}
