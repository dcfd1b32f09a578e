// Package client provides commands that call a running charsheet server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/KirkDiggler/charsheet-api/internal/errors"
	v1 "github.com/KirkDiggler/charsheet-api/internal/handlers/charsheet/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	userID     string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call the charsheet API",
	Long:  `Client commands make real gRPC requests against a running server and print the JSON responses.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID sent as x-user-id (required)")
	_ = ClientCmd.MarkPersistentFlagRequired("user") // nolint:errcheck // safe to ignore in init

	ClientCmd.AddCommand(createCharacterCmd)
	ClientCmd.AddCommand(getCharacterCmd)
	ClientCmd.AddCommand(listCharactersCmd)
	ClientCmd.AddCommand(deleteCharacterCmd)

	ClientCmd.AddCommand(updateAttributeCmd)
	ClientCmd.AddCommand(updateSkillCmd)
	ClientCmd.AddCommand(updateCombatStatsCmd)
	ClientCmd.AddCommand(grantPointsCmd)

	ClientCmd.AddCommand(levelUpOptionsCmd)
	ClientCmd.AddCommand(levelUpCmd)
	ClientCmd.AddCommand(historyCmd)
}

// createCharacterClient connects to the server and returns a client plus a
// request context carrying the caller's user ID
func createCharacterClient() (*v1.Client, context.Context, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = metadata.AppendToOutgoingContext(ctx, v1.UserIDHeader, strings.TrimSpace(userID))

	cleanup := func() {
		cancel()
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return v1.NewClient(conn), ctx, cleanup, nil
}

// call runs one RPC and prints its response
func call[Resp any](rpc func(*v1.Client, context.Context) (*Resp, error)) error {
	client, ctx, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := rpc(client, ctx)
	if err != nil {
		return describe(err)
	}
	return printJSON(resp)
}

// describe turns a status error back into a service error and prints its
// details, since the CLI is where conflict metadata gets read by a human
func describe(err error) error {
	converted := errors.FromGRPCError(err)
	if meta := errors.GetMeta(converted); len(meta) > 0 {
		_ = printJSON(meta) // nolint:errcheck // best effort
	}
	if errors.GetCode(converted).Retryable() {
		return errors.Wrap(converted, "request can be retried after fetching the character again")
	}
	return converted
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to print response: %w", err)
	}
	return nil
}
