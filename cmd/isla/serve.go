package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/isla-dev/isla/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		dir       string
		devReload bool
		pretty    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve built island bundles for local preview",
		Long: `Serve a directory of built island bundles and state documents.

The preview server exposes the directory under /islands/, a health
endpoint, Prometheus metrics, and (with --dev) a WebSocket reload
channel browsers can subscribe to.

Examples:
  isla serve
  isla serve --addr=:3000 --dir=dist
  isla serve --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, dir, devReload, pretty)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&dir, "dir", "d", "dist", "Directory of built bundles")
	cmd.Flags().BoolVar(&devReload, "dev", false, "Enable the dev reload channel")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print rendered HTML")

	return cmd
}

func runServe(addr, dir string, devReload, pretty bool) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("bundle directory %q: %w", dir, err)
	}

	cfg := server.DefaultConfig()
	cfg.Addr = addr
	cfg.DevReload = devReload
	cfg.Pretty = pretty
	srv := server.New(cfg)

	srv.Router().Handle("/islands/*",
		http.StripPrefix("/islands/", http.FileServer(http.Dir(dir))))

	printBanner()
	info("serving %s on %s", dir, addr)
	if devReload {
		info("dev reload channel at ws://%s/dev/reload", addr)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case <-sigc:
		info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
