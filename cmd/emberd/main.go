// Command emberd is a Minecraft Java Edition server core, protocol 765
// (game version 1.20.4): handshake/status/login to configuration-state
// handoff, with world simulation and play-state gameplay left to an
// external collaborator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"emberd/internal/mcserver"
	"emberd/internal/properties"
)

// Version is the core's own release identifier, reported by -version.
const Version = "0.1.0"

func main() {
	propsPath := flag.String("properties", "server.properties", "path to the server.properties file")
	faviconPath := flag.String("favicon", "favicon.png", "path to the server-list favicon")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("emberd v%s (protocol 765, 1.20.4)\n", Version)
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *propsPath, *faviconPath); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, propsPath, faviconPath string) error {
	props, err := properties.Load(propsPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", propsPath, err)
	}
	if err := properties.Save(propsPath, props); err != nil {
		return fmt.Errorf("writing normalized %s: %w", propsPath, err)
	}

	srv := mcserver.New(props, faviconPath, slog.Default())
	return srv.Run(ctx)
}
