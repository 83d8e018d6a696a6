// internal/nodeid/doc.go

/*
Package nodeid centralizes the identifier rules of the work graph.

Node ids are opaque strings chosen by whoever builds the graph. Stacks are
usually identified by their stack name, nested stacks by a slash separated
path such as `Stage/Api`. Every asset contributes two nodes whose ids are
derived from the asset id, `<asset>-build` and `<asset>-publish`.

The package enforces the identifier schema and keeps the derivation logic
in one place so that loaders and the graph facade agree on it.
*/
package nodeid
