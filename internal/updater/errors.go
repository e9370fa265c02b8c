package updater

import "errors"

const (
	repositoryOpenErrorMessageConstant = "repository cannot be opened"
	fetchErrorMessageConstant          = "remote fetch failed"
	pullErrorMessageConstant           = "pull failed"
	comparisonErrorMessageConstant     = "branch comparison failed"
)

// ErrRepositoryOpen indicates a directory does not hold a readable repository.
var ErrRepositoryOpen = errors.New(repositoryOpenErrorMessageConstant)

// ErrFetch indicates a fetch against a specific remote failed.
var ErrFetch = errors.New(fetchErrorMessageConstant)

// ErrPull indicates an authenticated pull failed during fetch or integration.
var ErrPull = errors.New(pullErrorMessageConstant)

// ErrComparison indicates divergence data for a tracked branch was unreadable.
var ErrComparison = errors.New(comparisonErrorMessageConstant)
