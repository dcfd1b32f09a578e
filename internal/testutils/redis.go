// Package testutils holds the fixtures shared by repository, engine and
// orchestrator tests
package testutils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/charsheet-api/internal/redis"
)

// CreateTestRedis starts an in-memory server and connects to it the way the
// server binary does. The server is returned so tests can inspect raw keys or
// corrupt documents on purpose.
func CreateTestRedis(t testing.TB) (redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start(), "failed to start miniredis")

	client, err := redis.Connect(context.Background(), []string{mr.Addr()}, &redis.Options{PoolSize: 4})
	require.NoError(t, err, "failed to connect to miniredis")

	return client, mr, func() {
		_ = client.Close() // nolint:errcheck // test cleanup
		mr.Close()
	}
}
