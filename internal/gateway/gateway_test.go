package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCLI writes an executable shell script that stands in for lightning-cli.
func stubCLI(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lightning-cli")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestExecute_DecodesStructuredJSON(t *testing.T) {
	bin := stubCLI(t, `echo '{"blockheight": 850000, "num_peers": 3}'`)
	c := NewClient(Options{Binary: bin})

	res := c.Execute(context.Background(), "getinfo", nil)

	require.True(t, res.OK())
	obj, ok := res.Object()
	require.True(t, ok)
	assert.Equal(t, float64(850000), obj["blockheight"])
}

func TestExecute_PassesNetworkCommandAndArgs(t *testing.T) {
	bin := stubCLI(t, `printf '{"argv": "%s"}' "$*"`)
	c := NewClient(Options{Binary: bin, Network: "regtest"})

	res := c.Execute(context.Background(), "close", []string{"abc123", "force"})

	require.True(t, res.OK())
	obj, _ := res.Object()
	assert.Equal(t, "--network=regtest close abc123 force", obj["argv"])
}

func TestExecute_MissingBinaryIsFailure(t *testing.T) {
	c := NewClient(Options{Binary: filepath.Join(t.TempDir(), "definitely-absent")})

	res := c.Execute(context.Background(), "getinfo", nil)

	require.False(t, res.OK())
	assert.Contains(t, res.Message(), "not found")
}

func TestExecute_NonZeroExitSurfacesStderr(t *testing.T) {
	bin := stubCLI(t, `echo 'Connecting to lightning-rpc: Connection refused' >&2; exit 1`)
	c := NewClient(Options{Binary: bin})

	res := c.Execute(context.Background(), "getinfo", nil)

	require.False(t, res.OK())
	assert.Contains(t, res.Message(), "error executing getinfo")
	assert.Contains(t, res.Message(), "Connection refused")
}

func TestExecute_EmptyOutputIsFailure(t *testing.T) {
	bin := stubCLI(t, `true`)
	c := NewClient(Options{Binary: bin})

	res := c.Execute(context.Background(), "getinfo", nil)

	require.False(t, res.OK())
	assert.Contains(t, res.Message(), "empty response from getinfo")
}

func TestExecute_NonJSONOutputIsVerbatimFailure(t *testing.T) {
	bin := stubCLI(t, `echo 'some plain diagnostic text'`)
	c := NewClient(Options{Binary: bin})

	res := c.Execute(context.Background(), "weird", nil)

	require.False(t, res.OK())
	assert.Equal(t, "some plain diagnostic text", res.Message())
}

func TestResultTags(t *testing.T) {
	s := Structured(map[string]any{"k": "v"})
	assert.True(t, s.OK())
	assert.Empty(t, s.Message())

	f := Failuref("error executing %s: %s", "pay", "no route")
	assert.False(t, f.OK())
	assert.Nil(t, f.Value())
	assert.Equal(t, "error executing pay: no route", f.Message())

	_, isObj := Structured([]any{}).Object()
	assert.False(t, isObj)
}
