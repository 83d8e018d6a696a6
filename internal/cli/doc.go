// Package cli builds the workgraph command tree. Flags, WORKGRAPH_*
// environment variables and an optional config file are merged into an
// app.Config, and usage problems are reported as *ExitError with code 2.
package cli
