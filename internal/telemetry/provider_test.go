package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/streakarena/internal/config"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "arena-test"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address: nothing is exported.
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "arena-test",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
