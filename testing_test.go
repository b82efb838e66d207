package smc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/macsmc/smc/internal/testutils"
	"github.com/macsmc/smc/wire"
)

// newTestFake builds a fake transport with a small key table covering the
// common value encodings.
func newTestFake() *testutils.FakeTransport {
	fake := testutils.NewFakeTransport()
	fake.SetFloat32("TC0P", 58.25)
	fake.SetSP78("TC0D", 61.5)
	fake.SetUint8("FNum", 2)
	fake.SetFPE2("F0Ac", 1220)
	return fake
}

// newTestClient builds a Client whose sessions all run over the given fake.
func newTestClient(t testing.TB, fake *testutils.FakeTransport, config Config) *Client {
	t.Helper()

	config.OpenTransport = func() (Transport, error) {
		return fake, nil
	}

	client, err := NewClient(config)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func assertCallErrorStatus(t testing.TB, err error, status wire.Status) {
	t.Helper()
	var ce *CallError
	require.ErrorAs(t, err, &ce, "error should be a CallError")
	require.Equal(t, status, ce.Status, "CallError status does not match")
}

func assertCallErrorResult(t testing.TB, err error, result uint8) {
	t.Helper()
	var ce *CallError
	require.ErrorAs(t, err, &ce, "error should be a CallError")
	require.Equal(t, result, ce.Result, "CallError result does not match")
}
