package updater

import (
	"errors"
	"fmt"
)

const (
	handleDirectoryRequiredMessageConstant    = "repository directory must be provided"
	handleRepositoryMissingMessageConstant    = "repository backend handle must be provided"
	handleHeadSnapshotFailureTemplateConstant = "unable to snapshot repository head: %w"
)

// ErrHandleDirectoryRequired indicates the handle directory was empty.
var ErrHandleDirectoryRequired = errors.New(handleDirectoryRequiredMessageConstant)

// ErrHandleRepositoryMissing indicates the backend repository was absent.
var ErrHandleRepositoryMissing = errors.New(handleRepositoryMissingMessageConstant)

// RepositoryHandle identifies one managed repository. HeadBranchName and
// HeadCommitID are snapshots taken at construction and are never refreshed;
// callers needing current state read through Repository.
type RepositoryHandle struct {
	Directory      string
	HeadBranchName string
	HeadCommitID   string
	repository     Repository
}

// NewRepositoryHandle snapshots the repository head and wraps the backend
// handle. Construction fails when the head cannot be read, which discovery
// treats as an unopenable repository.
func NewRepositoryHandle(directoryPath string, repository Repository) (*RepositoryHandle, error) {
	if len(directoryPath) == 0 {
		return nil, ErrHandleDirectoryRequired
	}
	if repository == nil {
		return nil, ErrHandleRepositoryMissing
	}

	headSnapshot, headError := repository.Head()
	if headError != nil {
		return nil, fmt.Errorf(handleHeadSnapshotFailureTemplateConstant, headError)
	}

	return &RepositoryHandle{
		Directory:      directoryPath,
		HeadBranchName: headSnapshot.BranchName,
		HeadCommitID:   headSnapshot.CommitID,
		repository:     repository,
	}, nil
}

// Repository returns the backend handle used for remote operations.
func (handle *RepositoryHandle) Repository() Repository {
	return handle.repository
}
