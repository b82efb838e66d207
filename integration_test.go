package smc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openController opens a session against the real controller, skipping the
// test on hosts where the service is unavailable.
func openController(t *testing.T) *Conn {
	t.Helper()

	conn, err := Open()
	if err != nil {
		t.Skipf("controller not available: %v", err)
	}

	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Errorf("Failed to close session: %v", err)
		}
	})
	return conn
}

func TestIntegrationReadCPUTemperature(t *testing.T) {
	conn := openController(t)

	val, err := conn.ReadKey("TC0P")
	if IsKeyNotFound(err) {
		t.Skipf("host has no TC0P key")
	}
	require.NoError(t, err)
	require.NotZero(t, val.DataSize)

	celsius, err := val.Float64()
	require.NoError(t, err)

	// A powered-on machine reads somewhere between freezing and throttling.
	assert.Greater(t, celsius, 0.0)
	assert.Less(t, celsius, 150.0)
}

func TestIntegrationKeyInfo(t *testing.T) {
	conn := openController(t)

	info, err := conn.GetKeyInfo(0x464E756D) // FNum
	if IsKeyNotFound(err) {
		t.Skipf("host has no FNum key")
	}
	require.NoError(t, err)
	assert.Equal(t, uint32(1), info.DataSize)
}

func TestIntegrationMissingKey(t *testing.T) {
	conn := openController(t)

	_, err := conn.ReadKey("ZZZZ")
	require.Error(t, err)
	assert.True(t, IsKeyNotFound(err), "ZZZZ should not exist, got: %v", err)
}

func TestIntegrationClient(t *testing.T) {
	client, err := NewClient(Config{MaxSessions: 2})
	require.NoError(t, err)
	defer client.Close()

	celsius, err := client.Float(context.Background(), "TC0P")
	if errors.Is(err, ErrServiceNotFound) {
		t.Skipf("controller not available: %v", err)
	}
	var oe *OpenError
	if errors.As(err, &oe) {
		t.Skipf("controller refused the session: %v", err)
	}
	if IsKeyNotFound(err) {
		t.Skipf("host has no TC0P key")
	}
	require.NoError(t, err)

	assert.Greater(t, celsius, 0.0)
	assert.Less(t, celsius, 150.0)
}
