package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlab/fieldlab/internal/session"
)

// execCommand runs a subcommand with the given args and captured output.
func execCommand(t *testing.T, cmd *cobra.Command, args []string) (*bytes.Buffer, *bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	return buf, errBuf, cmd.Execute()
}

func TestEvalText(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	buf, _, err := execCommand(t, NewEvalCommand(rootOpts), []string{"(1+2i) * (3-1i)"})
	require.NoError(t, err)
	assert.Equal(t, "5+5i\n", buf.String())
}

func TestEvalJSON(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	buf, _, err := execCommand(t, NewEvalCommand(rootOpts), []string{"(1+2i) + (3-1i)"})
	require.NoError(t, err)

	var response struct {
		Status string     `json:"status"`
		Data   EvalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, 4.0, response.Data.Re)
	assert.Equal(t, 1.0, response.Data.Im)
}

func TestEvalWithPolar(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	buf, _, err := execCommand(t, NewEvalCommand(rootOpts), []string{"1 + i", "--polar"})
	require.NoError(t, err)

	var response struct {
		Data EvalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	require.NotNil(t, response.Data.Polar)
	assert.InDelta(t, 0.7853981633974483, response.Data.Polar.Angle, 1e-12)
	assert.InDelta(t, 1.4142135623730951, response.Data.Polar.Radius, 1e-12)
}

func TestEvalDomainError(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	buf, _, err := execCommand(t, NewEvalCommand(rootOpts), []string{"inv(0+0i)"})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [DOMAIN]")
}

func TestEvalParseError(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	_, _, err := execCommand(t, NewEvalCommand(rootOpts), []string{"1 + "})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEvalSessionRequiresDB(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	_, _, err := execCommand(t, NewEvalCommand(rootOpts), []string{"1 + i", "--session", "demo"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--session requires --db")
}

func TestEvalRecordsToSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lab.db")

	rootOpts := &RootOptions{Format: "text"}
	for _, expr := range []string{"1 + i", "inv(2i)"} {
		_, _, err := execCommand(t, NewEvalCommand(rootOpts),
			[]string{expr, "--db", dbPath, "--session", "demo"})
		require.NoError(t, err)
	}

	st, err := session.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	evals, err := st.ReadSession(context.Background(), "demo")
	require.NoError(t, err)
	require.Len(t, evals, 2)
	assert.Equal(t, "1 + i", evals[0].Input)
	assert.Equal(t, "inv(2i)", evals[1].Input)
}

func TestEvalMintsSessionToken(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lab.db")

	rootOpts := &RootOptions{Format: "json"}
	opts := &EvalOptions{
		RootOptions: rootOpts,
		TokenGen:    session.NewFixedGenerator("fixed-token-1"),
	}

	// Wire the command by hand so the fixed generator is used.
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}
	opts.Database = dbPath
	require.NoError(t, evalRecorded(opts, "2 * i", formatter))

	var response struct {
		Data EvalResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "fixed-token-1", response.Data.Session)
	assert.Equal(t, int64(1), response.Data.Seq)
}
