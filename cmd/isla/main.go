package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬┌─┐┬  ┌─┐
  │└─┐│  ├─┤
  ┴└─┘┴─┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "isla",
		Short: "Fine-grained reactive islands for Go",
		Long: `isla renders pages on the server and hydrates interactive
islands on the client.

  • Fine-grained signal reactivity, no virtual-DOM diff
  • SSR with lockstep hydration and mismatch diagnostics
  • Per-island triggers: load, idle, visible, media, manual
  • Prometheus metrics and OpenTelemetry tracing built in`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		publishCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the isla ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("\033[36m•\033[0m %s\n", fmt.Sprintf(format, args...))
}
