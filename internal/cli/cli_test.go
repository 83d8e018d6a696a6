package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/workgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloGraph = `
stack "network" {
  deploy = "echo network up"
}

stack "app" {
  depends_on = ["network"]
  deploy     = "echo app up"
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &testutil.SafeBuffer{}
	err := Execute(context.Background(), args, out)
	return out.String(), err
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	assert.Equal(t, code, exitErr.Code)
	return exitErr
}

func TestHelp(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "no arguments", args: nil, want: "Available Commands:"},
		{name: "help flag", args: []string{"--help"}, want: "WORKGRAPH_CONCURRENCY"},
		{name: "deploy without graph", args: []string{"deploy"}, want: "deploy [GRAPH_PATH]"},
		{name: "graph without graph", args: []string{"graph"}, want: "graph [GRAPH_PATH]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Usage:")
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	graphPath := writeFile(t, "graph.hcl", helloGraph)

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"deploy", "--bogus"}, wantMsg: "unknown flag: --bogus"},
		{name: "too many arguments", args: []string{"deploy", "a.hcl", "b.hcl"}, wantMsg: "accepts at most 1 arg(s), received 2"},
		{name: "zero concurrency", args: []string{"deploy", "--concurrency", "0", graphPath}, wantMsg: "concurrency must be at least 1"},
		{name: "bad log level", args: []string{"deploy", "--log-level", "trace", graphPath}, wantMsg: "invalid log-level"},
		{name: "skip published without state", args: []string{"deploy", "--skip-published", graphPath}, wantMsg: "state directory"},
		{name: "missing config file", args: []string{"deploy", "--config", "/does/not/exist.yaml", graphPath}, wantMsg: "failed to read config file"},
		{name: "graph with bad log format", args: []string{"graph", "--log-format", "xml", graphPath}, wantMsg: "invalid log-format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			exitErr := requireExitCode(t, err, 2)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestDeploy(t *testing.T) {
	graphPath := writeFile(t, "graph.hcl", helloGraph)

	out, err := execute(t, "deploy", "-c", "2", graphPath)
	require.NoError(t, err)
	assert.Contains(t, out, "[network] network up")
	assert.Contains(t, out, "[app] app up")
	assert.Contains(t, out, "Summary: 2 nodes, 2 completed, 0 failed, 0 not run")
}

func TestDeployGraphFlag(t *testing.T) {
	graphPath := writeFile(t, "graph.hcl", helloGraph)

	out, err := execute(t, "deploy", "--graph", graphPath)
	require.NoError(t, err)
	assert.Contains(t, out, "[app] app up")
}

func TestDeployFailure(t *testing.T) {
	graphPath := writeFile(t, "graph.hcl", `
stack "network" {
  deploy = "exit 1"
}
`)

	_, err := execute(t, "deploy", graphPath)
	require.Error(t, err)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr), "deployment failures are not usage errors")
	assert.Contains(t, err.Error(), "deployment failed")
}

func TestEnvironmentOverrides(t *testing.T) {
	graphPath := writeFile(t, "graph.hcl", helloGraph)

	t.Run("graph path", func(t *testing.T) {
		t.Setenv("WORKGRAPH_GRAPH", graphPath)

		out, err := execute(t, "deploy")
		require.NoError(t, err)
		assert.Contains(t, out, "[app] app up")
	})

	t.Run("concurrency", func(t *testing.T) {
		t.Setenv("WORKGRAPH_CONCURRENCY", "0")

		_, err := execute(t, "deploy", graphPath)
		exitErr := requireExitCode(t, err, 2)
		assert.Contains(t, exitErr.Message, "concurrency must be at least 1, got 0")
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("WORKGRAPH_CONCURRENCY", "0")

		_, err := execute(t, "deploy", "--concurrency", "1", graphPath)
		require.NoError(t, err)
	})
}

func TestConfigFile(t *testing.T) {
	graphPath := writeFile(t, "graph.hcl", helloGraph)

	t.Run("values are read", func(t *testing.T) {
		configPath := writeFile(t, "workgraph.yaml", "concurrency: 0\n")

		_, err := execute(t, "deploy", "--config", configPath, graphPath)
		exitErr := requireExitCode(t, err, 2)
		assert.Contains(t, exitErr.Message, "concurrency must be at least 1, got 0")
	})

	t.Run("graph path from file", func(t *testing.T) {
		configPath := writeFile(t, "workgraph.yaml", "graph: "+graphPath+"\nlog-level: debug\n")

		out, err := execute(t, "deploy", "--config", configPath)
		require.NoError(t, err)
		assert.Contains(t, out, "[app] app up")
		assert.Contains(t, out, "level=DEBUG")
	})
}

func TestGraph(t *testing.T) {
	t.Run("prints nodes", func(t *testing.T) {
		graphPath := writeFile(t, "graph.hcl", helloGraph)

		out, err := execute(t, "graph", graphPath)
		require.NoError(t, err)
		assert.Contains(t, out, "network [stack] PENDING\n")
		assert.Contains(t, out, "app [stack] PENDING <- network\n")
		assert.NotContains(t, out, "network up")
	})

	t.Run("cycle fails", func(t *testing.T) {
		graphPath := writeFile(t, "graph.hcl", `
stack "a" {
  depends_on = ["b"]
}

stack "b" {
  depends_on = ["a"]
}
`)

		_, err := execute(t, "graph", graphPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dependency cycle")
	})
}
