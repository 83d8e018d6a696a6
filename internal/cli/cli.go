package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables mirroring the flags, e.g.
// WORKGRAPH_CONCURRENCY for --concurrency.
const envPrefix = "WORKGRAPH"

const defaultConcurrency = 4

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// options is shared by the subcommands of one root command.
type options struct {
	v          *viper.Viper
	configFile string
}

func newOptions() *options {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	return &options{v: v}
}

// load binds the flags of the running command and reads the config file.
// Precedence is flag, then environment, then config file, then default.
func (o *options) load(cmd *cobra.Command) error {
	if err := o.v.BindPFlags(cmd.Flags()); err != nil {
		return usageError(err)
	}
	if o.configFile == "" {
		return nil
	}
	o.v.SetConfigFile(o.configFile)
	if err := o.v.ReadInConfig(); err != nil {
		return &ExitError{Code: 2, Message: "failed to read config file: " + err.Error()}
	}
	return nil
}

// graphPath prefers the positional argument over --graph.
func (o *options) graphPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.v.GetString("graph")
}

// NewRootCommand builds the workgraph command tree writing to outW.
func NewRootCommand(outW io.Writer) *cobra.Command {
	opts := newOptions()

	root := &cobra.Command{
		Use:   "workgraph",
		Short: "Deploy a dependency graph of stacks and assets",
		Long: `WorkGraph deploys infrastructure stacks and the assets they need in
dependency order, running independent work concurrently.

Every flag can also be set with a WORKGRAPH_* environment variable,
e.g. WORKGRAPH_CONCURRENCY=8, or with a key in the --config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Path to a config file (yaml, json or toml).")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	root.AddCommand(
		newDeployCommand(opts, outW),
		newGraphCommand(opts, outW),
	)
	return root
}

// Execute runs the command line. Usage problems are returned as *ExitError
// with code 2.
func Execute(ctx context.Context, args []string, outW io.Writer) error {
	root := NewRootCommand(outW)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// maxOneArg accepts an optional GRAPH_PATH.
func maxOneArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}
