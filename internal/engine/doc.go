// Package engine manages the state and relationships of stacked branches.
//
// It is responsible for:
//   - Reconstructing the stack graph from parent markers
//   - Tracking parent-child relationships between branches by name
//   - Selecting sub-forests (stack, upstack, downstack) of the graph
//   - Holding the lazily loaded pull request cache of each branch
//
// Nodes live in a single arena keyed by branch name; parent and children are
// stored as names and resolved through the graph.
package engine
