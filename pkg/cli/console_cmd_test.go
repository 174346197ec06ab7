package cli

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/pkg/client"
)

func TestExplain_PostsQuery(t *testing.T) {
	rec := &requestRecorder{}
	body := `[{"explain":"Expression ((Projection + Before ORDER BY))"},{"explain":"  ReadFromSystemNumbers"}]`
	srv := httptest.NewServer(jsonHandler(rec, 200, body))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "explain", "SELECT count() FROM system.numbers"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	output := restore()
	require.NoError(t, err)

	captured := rec.last()
	assert.Equal(t, "POST", captured.Method)
	assert.Equal(t, "/api/explain/plan", captured.Path)
	assert.JSONEq(t, `{"query":"SELECT count() FROM system.numbers"}`, captured.Body)

	assert.Contains(t, output, "Expression ((Projection + Before ORDER BY))")
	assert.Contains(t, output, "  ReadFromSystemNumbers")
}

func TestExplain_TypeFlag(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `[]`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "explain", "--type", "pipeline", "SELECT 1"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, "/api/explain/pipeline", rec.last().Path)
}

func TestExplain_InvalidType(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `[]`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "explain", "--type", "bogus", "SELECT 1"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported explain type "bogus"`)
	assert.Empty(t, rec.last().Path, "no request should be sent for an invalid explain type")
}

func TestQuery_Table(t *testing.T) {
	rec := &requestRecorder{}
	body := `{"columns":[{"name":"n","type":"UInt8"},{"name":"label","type":"String"}],"data":[{"n":1,"label":"one"}],"rowCount":1,"duration":3.5}`
	srv := httptest.NewServer(jsonHandler(rec, 200, body))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "query", "SELECT 1 AS n, 'one' AS label"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	output := restore()
	require.NoError(t, err)

	captured := rec.last()
	assert.Equal(t, "POST", captured.Method)
	assert.Equal(t, "/api/query", captured.Path)
	assert.JSONEq(t, `{"query":"SELECT 1 AS n, 'one' AS label"}`, captured.Body)

	assert.Contains(t, output, "LABEL")
	assert.Contains(t, output, "one")
}

func TestQuery_LimitFlag(t *testing.T) {
	rec := &requestRecorder{}
	body := `{"columns":[],"data":[],"rowCount":0,"duration":0}`
	srv := httptest.NewServer(jsonHandler(rec, 200, body))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "query", "--limit", "50", "SELECT 1"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	restore()
	require.NoError(t, err)

	assert.JSONEq(t, `{"query":"SELECT 1","limit":50}`, rec.last().Body)
}

func TestQuery_JSONOutput(t *testing.T) {
	rec := &requestRecorder{}
	body := `{"columns":[{"name":"n","type":"UInt8"}],"data":[{"n":7}],"rowCount":1,"duration":1.5}`
	srv := httptest.NewServer(jsonHandler(rec, 200, body))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "--output", "json", "query", "SELECT 7 AS n"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	output := restore()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &parsed))
	assert.Equal(t, float64(1), parsed["rowCount"])
}

func TestHealth_OK(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"status":"ok"}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "health"})

	restore := captureStdout(t)
	err := rootCmd.Execute()
	output := restore()
	require.NoError(t, err)

	assert.Equal(t, "/healthz", rec.last().Path)
	assert.Contains(t, output, "ok")
}

func TestHealth_Unavailable(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 503, `{"code":503,"message":"clickhouse unreachable"}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL, "health"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clickhouse unreachable")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.Code)
}
