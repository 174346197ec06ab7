package cli

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_RejectsUnknownOutputFormat(t *testing.T) {
	t.Setenv("QUERYDOG_HOST", "")
	t.Setenv("QUERYDOG_OUTPUT", "")

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--output", "yaml", "version"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "yaml"`)
}

func TestRoot_HostEnvFallback(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"status":"ok"}`))
	defer srv.Close()

	t.Setenv("QUERYDOG_HOST", srv.URL)
	t.Setenv("QUERYDOG_OUTPUT", "")

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"health"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	restore()
	require.NoError(t, err)

	assert.Equal(t, "/healthz", rec.last().Path)
}

func TestRoot_OutputEnvFallback(t *testing.T) {
	t.Setenv("QUERYDOG_HOST", "")
	t.Setenv("QUERYDOG_OUTPUT", "json")

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"version"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	output := restore()
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &parsed))
	assert.Equal(t, "dev", parsed["version"])
	assert.Equal(t, "none", parsed["commit"])
}

func TestRoot_FlagBeatsEnv(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"status":"ok"}`))
	defer srv.Close()

	t.Setenv("QUERYDOG_HOST", "http://127.0.0.1:1")
	t.Setenv("QUERYDOG_OUTPUT", "")

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--host", srv.URL, "health"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	restore()
	require.NoError(t, err)

	assert.Equal(t, "/healthz", rec.last().Path)
}

func TestVersion_Table(t *testing.T) {
	t.Setenv("QUERYDOG_HOST", "")
	t.Setenv("QUERYDOG_OUTPUT", "")

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"version"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	output := restore()
	require.NoError(t, err)

	assert.Contains(t, output, "querydog version dev (commit: none)")
}

func TestZeroArgCommandsRejectUnexpectedPositionalArgs(t *testing.T) {
	t.Setenv("QUERYDOG_HOST", "")
	t.Setenv("QUERYDOG_OUTPUT", "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "version", args: []string{"version", "extra"}},
		{name: "processes", args: []string{"processes", "extra"}},
		{name: "merges", args: []string{"merges", "extra"}},
		{name: "mutations", args: []string{"mutations", "extra"}},
		{name: "metrics", args: []string{"metrics", "extra"}},
		{name: "health", args: []string{"health", "extra"}},
		{name: "query-log", args: []string{"query-log", "extra"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tc.args)
			err := cmd.Execute()
			require.Error(t, err)
			require.Contains(t, err.Error(), `unknown command "extra"`)
		})
	}
}
