package cli

import (
	"io"
	"strings"

	"github.com/specialistvlad/workgraph/internal/app"
	"github.com/spf13/cobra"
)

func newGraphCommand(opts *options, outW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [GRAPH_PATH]",
		Short: "Print the graph without deploying it",
		Long: `Graph loads the graph the same way deploy does and prints one line per
node with its dependencies. It fails when the graph contains a cycle.`,
		Args: maxOneArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.graphPath(args)
			if path == "" {
				return cmd.Help()
			}

			cfg, err := app.NewConfig(app.Config{
				GraphPath:   path,
				Concurrency: 1,
				LogFormat:   strings.ToLower(opts.v.GetString("log-format")),
				LogLevel:    strings.ToLower(opts.v.GetString("log-level")),
			})
			if err != nil {
				return usageError(err)
			}

			return app.NewApp(outW, cfg).Plan(cmd.Context())
		},
	}

	cmd.Flags().StringP("graph", "g", "", "Path to the graph file or directory.")
	return cmd
}
