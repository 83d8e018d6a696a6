// Package graph provides the WorkGraph facade: the graph of stacks and asset
// build/publish steps together with every operation a deployment needs on it.
//
// # Lifecycle
//
//  1. **Construction:** nodes are added with their dependency ids (AddNode,
//     AddStack, AddAsset). Ids must be unique.
//  2. **Sanitizing:** RemoveUnavailableDependencies drops dependency ids that
//     do not name a node of the graph; absent work counts as done.
//  3. **Pruning (optional):** RemoveUnnecessaryAssets drops assets a caller
//     decided not to build, together with their publish steps.
//  4. **Execution:** DoParallel runs everything respecting dependencies with
//     a bounded number of callbacks in flight.
//
// # Thread-Safety
//
// Reads (Node, Nodes, Counts, String) are safe at any time, including while
// DoParallel runs. Structural changes must not overlap with DoParallel.
package graph
