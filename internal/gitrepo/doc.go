// Package gitrepo implements the updater's repository backend on top of
// go-git.
//
// It exposes Engine for validity checks and repository opening, and a
// Repository implementation that performs branch and remote enumeration,
// authenticated fetch and pull, and commit-graph divergence computation
// entirely in process.
package gitrepo
