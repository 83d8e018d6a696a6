// Package app wires a deployment together: it loads the graph file, prunes
// assets that are already published, runs the graph with shell actions and
// reports progress and a summary. It knows nothing about flags or exit codes.
package app
