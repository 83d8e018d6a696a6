package cli

import (
	"io"
	"strings"

	"github.com/specialistvlad/workgraph/internal/app"
	"github.com/spf13/cobra"
)

func newDeployCommand(opts *options, outW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [GRAPH_PATH]",
		Short: "Deploy every node of the graph",
		Long: `Deploy loads the graph, drops dependencies on nodes it does not
contain and runs every node with at most --concurrency in flight.
It stops starting new work at the first failure.

GRAPH_PATH is a single .hcl file or a directory of .hcl files.`,
		Args: maxOneArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.graphPath(args)
			if path == "" {
				return cmd.Help()
			}

			v := opts.v
			cfg, err := app.NewConfig(app.Config{
				GraphPath:       path,
				Concurrency:     v.GetInt("concurrency"),
				WorkDir:         v.GetString("workdir"),
				StateDir:        v.GetString("state-dir"),
				SkipPublished:   v.GetBool("skip-published"),
				LogFormat:       strings.ToLower(v.GetString("log-format")),
				LogLevel:        strings.ToLower(v.GetString("log-level")),
				HealthcheckPort: v.GetInt("healthcheck-port"),
				EventsURL:       v.GetString("events-url"),
				EventsNamespace: v.GetString("events-namespace"),
				EventsInsecure:  v.GetBool("events-insecure"),
			})
			if err != nil {
				return usageError(err)
			}

			return app.NewApp(outW, cfg).Run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringP("graph", "g", "", "Path to the graph file or directory.")
	f.IntP("concurrency", "c", defaultConcurrency, "Maximum number of nodes deployed at once.")
	f.String("workdir", "", "Working directory of node commands. Defaults to the current directory.")
	f.String("state-dir", "", "Directory remembering published asset fingerprints.")
	f.Bool("skip-published", false, "Skip assets whose fingerprint was already published. Requires --state-dir.")
	f.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	f.String("events-url", "", "Socket.IO server receiving progress events.")
	f.String("events-namespace", "/", "Socket.IO namespace for progress events.")
	f.Bool("events-insecure", false, "Skip TLS certificate verification for --events-url.")
	return cmd
}
