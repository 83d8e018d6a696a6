// Package shell implements executor.Actions by running the shell snippet
// attached to each node with an in-process POSIX shell interpreter, so
// graph files behave the same on every platform and need no /bin/sh.
package shell
