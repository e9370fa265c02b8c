// Package updater keeps a primary installation repository and discovered
// third-party package repositories synchronized with their upstream remotes.
//
// It exposes Service for discovering managed repositories, detecting pending
// upstream updates, and pulling repositories forward, plus batch runners that
// process many repositories concurrently. One repository's failure never
// aborts a batch: every public operation funnels failures into structured
// logs and returns a value-level result.
package updater
