// Package integrationtests runs graph files end to end: loading, sanitizing,
// pruning and deploying them with real shell commands.
package integrationtests
