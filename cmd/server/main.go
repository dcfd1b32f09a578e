// Package main is the entry point for the charsheet gRPC server
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/charsheet-api/cmd/server/client"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "charsheet-api",
	Short:   "Character sheet rules engine",
	Version: version,
	Long: `charsheet-api manages tabletop character sheets: point-buy pricing,
derived values, level-ups and an audit log of every change.

Run "server" to serve the gRPC API, "client" to call one, and
"check-data" to scan stored characters for damage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(serverCmd, client.ClientCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
